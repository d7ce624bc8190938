package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"report-runtime/internal/state/repository"
	"report-runtime/pkg/log"
	pkgRedis "report-runtime/pkg/redis"
)

// fakeRedis stores strings in a map. Methods it does not override panic
// through the nil embedded interface.
type fakeRedis struct {
	pkgRedis.IRedis
	data     map[string]string
	setNXErr error
	patterns []string
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if f.setNXErr != nil {
		return false, f.setNXErr
	}
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = string(value.([]byte))
	return true, nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeRedis) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	f.patterns = append(f.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	n := 0
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func TestPutIfAbsent(t *testing.T) {
	tests := []struct {
		name    string
		preset  map[string]string
		err     error
		want    bool
		wantErr error
	}{
		{name: "free key", preset: map[string]string{}, want: true},
		{name: "taken key", preset: map[string]string{"rs:t1": "old"}, want: false},
		{name: "out of memory", preset: map[string]string{}, err: errors.New("OOM command not allowed when used memory > 'maxmemory'."), wantErr: repository.ErrQuotaExceeded},
		{name: "other failure", preset: map[string]string{}, err: errors.New("connection reset"), wantErr: repository.ErrWriteFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRedis{data: tt.preset, setNXErr: tt.err}
			r := New(f, log.NewNop())

			got, err := r.PutIfAbsent(context.Background(), "rs:t1", []byte("new"))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PutIfAbsent() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PutIfAbsent() = %v, want %v", got, tt.want)
			}
			if tt.preset["rs:t1"] == "old" && f.data["rs:t1"] != "old" {
				t.Errorf("stored value overwritten: %q", f.data["rs:t1"])
			}
		})
	}
}

func TestGetAndClear(t *testing.T) {
	f := &fakeRedis{data: map[string]string{"rs:a": "1", "other:b": "2"}}
	r := New(f, log.NewNop())
	ctx := context.Background()

	v, found, err := r.Get(ctx, "rs:a")
	if err != nil || !found || string(v) != "1" {
		t.Fatalf("Get() = %q, %v, %v", v, found, err)
	}
	if _, found, err := r.Get(ctx, "rs:missing"); err != nil || found {
		t.Errorf("Get() missing = %v, %v, want false, nil", found, err)
	}

	if err := r.Clear(ctx, "rs:"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if len(f.patterns) != 1 || f.patterns[0] != "rs:*" {
		t.Errorf("patterns = %v, want [rs:*]", f.patterns)
	}
	if _, ok := f.data["other:b"]; !ok {
		t.Error("Clear() removed key outside prefix")
	}
}

package memory

import (
	"context"
	"errors"
	"testing"

	"report-runtime/internal/state/repository"
)

func TestPutIfAbsent(t *testing.T) {
	ctx := context.Background()
	r := New(0)

	ok, err := r.PutIfAbsent(ctx, "report#a", []byte("first"))
	if err != nil || !ok {
		t.Fatalf("PutIfAbsent() = %v, %v, want true, nil", ok, err)
	}
	ok, err = r.PutIfAbsent(ctx, "report#a", []byte("second"))
	if err != nil || ok {
		t.Fatalf("PutIfAbsent() on taken key = %v, %v, want false, nil", ok, err)
	}
	got, found, _ := r.Get(ctx, "report#a")
	if !found || string(got) != "first" {
		t.Errorf("Get() = %q, %v, want first", got, found)
	}
}

func TestQuota(t *testing.T) {
	ctx := context.Background()
	r := New(20)

	if _, err := r.PutIfAbsent(ctx, "k1", []byte("0123456789")); err != nil {
		t.Fatalf("PutIfAbsent() error = %v", err)
	}
	_, err := r.PutIfAbsent(ctx, "k2", []byte("0123456789"))
	if !errors.Is(err, repository.ErrQuotaExceeded) {
		t.Fatalf("PutIfAbsent() error = %v, want %v", err, repository.ErrQuotaExceeded)
	}

	if err := r.Clear(ctx, "k"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := r.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	if ok, err := r.PutIfAbsent(ctx, "k2", []byte("0123456789")); err != nil || !ok {
		t.Errorf("PutIfAbsent() after Clear = %v, %v", ok, err)
	}
}

func TestClearKeepsOtherPrefixes(t *testing.T) {
	ctx := context.Background()
	r := New(0)
	r.PutIfAbsent(ctx, "a:1", []byte("x"))
	r.PutIfAbsent(ctx, "b:1", []byte("y"))

	r.Clear(ctx, "a:")

	if _, found, _ := r.Get(ctx, "b:1"); !found {
		t.Error("Clear() removed a key outside the prefix")
	}
	if _, found, _ := r.Get(ctx, "a:1"); found {
		t.Error("Clear() kept a key inside the prefix")
	}
}

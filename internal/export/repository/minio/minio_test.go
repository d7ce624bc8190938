package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"report-runtime/internal/export"
	"report-runtime/pkg/log"
	pkgMinio "report-runtime/pkg/minio"
)

type fakeMinIO struct {
	pkgMinio.MinIO
	uploads   []pkgMinio.Object
	bodies    [][]byte
	uploadErr error
}

func (f *fakeMinIO) Put(_ context.Context, obj pkgMinio.Object) (pkgMinio.ObjectInfo, error) {
	if f.uploadErr != nil {
		return pkgMinio.ObjectInfo{}, f.uploadErr
	}
	b, _ := io.ReadAll(obj.Body)
	f.uploads = append(f.uploads, obj)
	f.bodies = append(f.bodies, b)
	return pkgMinio.ObjectInfo{Bucket: obj.Bucket, Name: obj.Name, Size: int64(len(b))}, nil
}

func (f *fakeMinIO) PresignGet(_ context.Context, bucket, name string, _ time.Duration) (string, error) {
	return "https://minio.local/" + bucket + "/" + name, nil
}

func TestStore(t *testing.T) {
	fm := &fakeMinIO{}
	repo := New(log.NewNop(), fm, Config{Bucket: "report-exports", Prefix: "exports"})

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	link, err := repo.Store(context.Background(), export.Export{
		WidgetID:  "7",
		Format:    "csv",
		Filename:  "Top Talkers",
		Data:      []byte("a,b\n"),
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if len(fm.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(fm.uploads))
	}
	req := fm.uploads[0]
	if !strings.HasPrefix(req.Name, "exports/2024/01/02/7/") || !strings.HasSuffix(req.Name, "-TopTalkers.csv") {
		t.Errorf("ObjectName = %q", req.Name)
	}
	if req.ContentType != export.ContentTypeCSV {
		t.Errorf("ContentType = %q", req.ContentType)
	}
	if !bytes.Equal(fm.bodies[0], []byte("a,b\n")) {
		t.Errorf("body = %q", fm.bodies[0])
	}
	if !strings.HasPrefix(link, "https://minio.local/report-exports/exports/") {
		t.Errorf("link = %q", link)
	}
}

func TestStoreErrors(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		repo := New(log.NewNop(), &fakeMinIO{}, Config{Bucket: "report-exports"})
		if _, err := repo.Store(context.Background(), export.Export{Format: "csv"}); !errors.Is(err, export.ErrEmptyExport) {
			t.Errorf("got %v, want ErrEmptyExport", err)
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		repo := New(log.NewNop(), &fakeMinIO{uploadErr: errors.New("down")}, Config{Bucket: "report-exports"})
		_, err := repo.Store(context.Background(), export.Export{Format: "csv", Data: []byte("x")})
		if !errors.Is(err, export.ErrStoreFailed) {
			t.Errorf("got %v, want ErrStoreFailed", err)
		}
	})
}

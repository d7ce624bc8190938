package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"report-runtime/internal/export"
	pkgMinio "report-runtime/pkg/minio"

	"github.com/google/uuid"
)

func (r *implRepository) Store(ctx context.Context, e export.Export) (string, error) {
	if len(e.Data) == 0 {
		return "", export.ErrEmptyExport
	}

	object := r.objectName(e)
	contentType := e.ContentType
	if contentType == "" {
		contentType = export.ContentTypeFor(e.Format)
	}

	_, err := r.minio.Put(ctx, pkgMinio.Object{
		Bucket:       r.cfg.Bucket,
		Name:         object,
		OriginalName: e.Filename + "." + e.Format,
		Body:         bytes.NewReader(e.Data),
		Size:         int64(len(e.Data)),
		ContentType:  contentType,
		Metadata: map[string]string{
			"widget-id":  e.WidgetID,
			"report-url": e.ReportURL,
		},
	})
	if err != nil {
		r.l.Errorf(ctx, "export.repository.minio.Store: upload %s: %v", object, err)
		return "", fmt.Errorf("%w: %v", export.ErrStoreFailed, err)
	}

	link, err := r.minio.PresignGet(ctx, r.cfg.Bucket, object, r.cfg.LinkExpiry)
	if err != nil {
		r.l.Warnf(ctx, "export.repository.minio.Store: presign %s: %v", object, err)
		return fmt.Sprintf("s3://%s/%s", r.cfg.Bucket, object), nil
	}
	return link, nil
}

// objectName is <prefix>/<yyyy/mm/dd>/<widget>/<uuid>-<filename>.<format>.
func (r *implRepository) objectName(e export.Export) string {
	created := e.CreatedAt
	if created.IsZero() {
		created = r.now()
	}
	owner := e.WidgetID
	if owner == "" {
		owner = "report"
	}
	name := export.SanitizeFilename(e.Filename)
	if name == "" {
		name = "export"
	}
	return strings.TrimPrefix(path.Join(
		r.cfg.Prefix,
		created.UTC().Format("2006/01/02"),
		owner,
		fmt.Sprintf("%s-%s.%s", uuid.NewString(), name, e.Format),
	), "/")
}

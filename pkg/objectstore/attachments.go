package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Attachments binds a Store to the URL scheme attachment columns record.
// Entities store plain URLs, so the public base must resolve to the bucket
// (a CDN, a reverse proxy, or the minio endpoint itself).
type Attachments struct {
	store      Store
	bucket     string
	publicBase string
}

func NewAttachments(store Store, bucket, publicBase string) *Attachments {
	return &Attachments{
		store:      store,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (a *Attachments) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return a.store.Put(ctx, key, body, size, contentType)
}

func (a *Attachments) Delete(ctx context.Context, key string) error {
	return a.store.Delete(ctx, key)
}

// PublicURL returns the URL recorded on the owning entity for a stored key.
func (a *Attachments) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", a.publicBase, a.bucket, key)
}

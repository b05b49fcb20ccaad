// Package storage proxies image uploads to a Google Cloud Storage bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

type Uploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewUploader(ctx context.Context, bucketName string) (*Uploader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Uploader{bucket: client.Bucket(bucketName), bucketName: bucketName}, nil
}

// Upload writes one file under images/ with a uuid prefix to avoid
// collisions, and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	objectName := fmt.Sprintf("images/%s-%s", uuid.NewString(), filename)

	w := u.bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish object %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, objectName), nil
}

// Delete removes the object a previously returned URL points at.
func (u *Uploader) Delete(ctx context.Context, fileURL string) error {
	objectName, err := u.objectFromURL(fileURL)
	if err != nil {
		return err
	}
	if err := u.bucket.Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %s: %w", objectName, err)
	}
	return nil
}

func (u *Uploader) objectFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}

	prefix := "/" + u.bucketName + "/"
	if strings.HasPrefix(parsed.Path, prefix) {
		return strings.TrimPrefix(parsed.Path, prefix), nil
	}
	return "", fmt.Errorf("could not resolve object path from %q", fileURL)
}

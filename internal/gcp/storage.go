package gcp

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// MediaStore archives analyzed uploads in a Cloud Storage bucket so the share
// page and report have a durable copy after the request's temp file is gone.
type MediaStore struct {
	client *storage.Client
	bucket string
}

// NewMediaStore creates a MediaStore over the given bucket.
func NewMediaStore(ctx context.Context, bucket string) (*MediaStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("media bucket must be provided")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &MediaStore{client: client, bucket: bucket}, nil
}

// ObjectName returns the archive path for one analysis.
func (m *MediaStore) ObjectName(analysisID, filename string) string {
	return fmt.Sprintf("analyses/%s/%s", analysisID, filename)
}

// Save writes data to the archive object only if it doesn't already exist.
// A precondition failure means a concurrent retry already archived the same
// analysis, which is not an error.
func (m *MediaStore) Save(ctx context.Context, objectName, contentType string, data []byte) error {
	obj := m.client.Bucket(m.bucket).Object(objectName)
	writer := obj.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 412 {
			return nil
		}
		return fmt.Errorf("failed to write media to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 412 {
			return nil
		}
		return fmt.Errorf("failed to finalize GCS write: %w", err)
	}
	return nil
}

// Delete removes the archive object for a deleted analysis. A missing object
// is tolerated so record deletion stays idempotent.
func (m *MediaStore) Delete(ctx context.Context, objectName string) error {
	err := m.client.Bucket(m.bucket).Object(objectName).Delete(ctx)
	if err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("failed to delete media object %s: %w", objectName, err)
	}
	return nil
}

func (m *MediaStore) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskAttachments implements Attachments on the local filesystem. Files
// live under dir and are served by the router under baseURL.
type DiskAttachments struct {
	dir     string
	baseURL string
}

// NewDiskAttachments ensures the upload directory exists.
func NewDiskAttachments(dir, baseURL string) (*DiskAttachments, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskAttachments{dir: dir, baseURL: baseURL}, nil
}

// Upload writes the payload to a fresh file. The file name doubles as
// the remote identifier.
func (d *DiskAttachments) Upload(ctx context.Context, filename string, r io.Reader, size int64) (Attachment, error) {
	contentType, body, err := sniffContentType(r)
	if err != nil {
		return Attachment{}, fmt.Errorf("sniff content type: %w", err)
	}

	key := uuid.New().String() + filepath.Ext(filename)
	f, err := os.Create(filepath.Join(d.dir, key))
	if err != nil {
		return Attachment{}, fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Attachment{}, fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Attachment{}, fmt.Errorf("close file: %w", err)
	}

	return Attachment{
		URL:      d.baseURL + "/" + key,
		RemoteID: key,
		Kind:     KindFromContentType(contentType),
	}, nil
}

// Delete removes the stored file. The identifier is reduced to its base
// name so a stored value can never escape the upload directory.
func (d *DiskAttachments) Delete(ctx context.Context, remoteID, kind string) error {
	err := os.Remove(filepath.Join(d.dir, filepath.Base(remoteID)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Dir returns the directory files are written to, for the router's
// static file handler.
func (d *DiskAttachments) Dir() string {
	return d.dir
}

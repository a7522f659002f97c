// Package services holds clients for the external collaborators of the
// site, currently the attachment service that stores uploaded media.
package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/models"
)

// Attachment is the stable reference returned by a successful upload.
// RemoteID is what a later deletion request is keyed by.
type Attachment struct {
	URL      string `json:"url"`
	RemoteID string `json:"remote_id"`
	Kind     string `json:"kind"`
}

// Attachments is the attachment-service contract. Upload must not leave
// partial state behind on failure: either the asset is stored and an
// Attachment is returned, or an error is returned and nothing exists.
type Attachments interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64) (Attachment, error)
	Delete(ctx context.Context, remoteID, kind string) error
}

// KindFromContentType maps a MIME type to the media kind recorded on a
// ProjectMedia row.
func KindFromContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaKindImage
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaKindVideo
	default:
		return models.MediaKindRaw
	}
}

// sniffContentType reads up to 512 bytes to detect the payload's content
// type, returning a reader that replays the consumed bytes.
func sniffContentType(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]
	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), r), nil
}

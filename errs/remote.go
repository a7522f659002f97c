package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Attachment-service (remote object storage) errors
var (
	ErrRemoteService = errors.New("attachment service failure")
)

// NewRemoteUploadError reports a failed upload to the attachment service.
// Upload failures are surfaced to the caller: no media row may exist
// without a confirmed successful upload.
func NewRemoteUploadError(filename string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrRemoteService,
		Details:    fmt.Sprintf("Failed to upload %q to attachment service", filename),
		Cause:      cause,
	}
}

// NewRemoteDeleteError reports a failed remote asset deletion. Callers
// log it and continue: local rows are removed regardless, trading a
// possibly dangling remote asset for an admin view that never gets stuck
// on a remote outage.
func NewRemoteDeleteError(remoteID string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrRemoteService,
		Details:    fmt.Sprintf("Failed to delete remote asset %q", remoteID),
		Cause:      cause,
	}
}

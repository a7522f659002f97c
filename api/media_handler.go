package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadMemory = 32 << 20 // 32MB buffered in memory, rest spills to disk

type mediaHandler struct {
	responder     Responder
	logger        zerolog.Logger
	projectRepo   *database.ProjectRepo
	mediaRepo     *database.ProjectMediaRepo
	attachments   services.Attachments
	uploadTimeout time.Duration
}

func newMediaHandler(projectRepo *database.ProjectRepo, mediaRepo *database.ProjectMediaRepo, attachments services.Attachments, uploadTimeout time.Duration) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		projectRepo:   projectRepo,
		mediaRepo:     mediaRepo,
		attachments:   attachments,
		uploadTimeout: uploadTimeout,
	}
}

// uploadMedia attaches one or more files to a project. The project is
// verified before any remote call is issued. Files are uploaded
// sequentially so the resulting media rows keep a deterministic order;
// each remote call runs under a bounded timeout. A failed file surfaces
// in the response but does not abort its siblings, and no row is
// written without a confirmed successful upload.
func (h mediaHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		fileHeaders := r.MultipartForm.File["files"]
		created := make([]*models.ProjectMedia, 0, len(fileHeaders))
		uploadErrors := []string{}
		skipped := 0

		for _, fh := range fileHeaders {
			// empty or unnamed payloads are silently skipped
			if fh.Filename == "" || fh.Size == 0 {
				skipped++
				continue
			}

			file, err := fh.Open()
			if err != nil {
				h.logger.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to open uploaded file")
				uploadErrors = append(uploadErrors, errs.NewRemoteUploadError(fh.Filename, err).Error())
				continue
			}

			ctx, cancel := context.WithTimeout(r.Context(), h.uploadTimeout)
			attachment, err := h.attachments.Upload(ctx, fh.Filename, file, fh.Size)
			cancel()
			file.Close()
			if err != nil {
				remoteErr := errs.NewRemoteUploadError(fh.Filename, err)
				h.logger.Error().Err(remoteErr).Msg("Attachment upload failed")
				uploadErrors = append(uploadErrors, remoteErr.Error())
				continue
			}

			media := &models.ProjectMedia{
				ProjectID: projectID,
				URL:       attachment.URL,
				RemoteID:  attachment.RemoteID,
				Kind:      attachment.Kind,
			}
			if err := h.mediaRepo.Add(media); err != nil {
				// the remote asset exists but the row does not; delete the
				// asset so no orphan survives the failure
				h.logger.Error().Err(err).Str("remoteID", attachment.RemoteID).Msg("Failed to record media row")
				if delErr := h.attachments.Delete(r.Context(), attachment.RemoteID, attachment.Kind); delErr != nil {
					h.logger.Warn().Err(delErr).Str("remoteID", attachment.RemoteID).Msg("Orphan remote asset cleanup failed")
				}
				uploadErrors = append(uploadErrors, errs.NewDatabaseError("create media", "project_media", err).Error())
				continue
			}
			created = append(created, media)
		}

		status := http.StatusOK
		switch {
		case len(created) > 0:
			status = http.StatusCreated
		case len(uploadErrors) > 0:
			status = http.StatusBadGateway
		}
		h.responder.WriteJSONStatus(w, status, map[string]any{
			"created": created,
			"errors":  uploadErrors,
			"skipped": skipped,
		})
	}
}

// deleteMedia removes a single media item. The remote deletion is
// best-effort: a failure is logged and swallowed, and the local row is
// removed regardless.
func (h mediaHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, apiErr := parseIDParam(r, "mediaID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		media, err := h.mediaRepo.FindByID(mediaID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find media", "project_media", err))
			return
		}
		if media == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("media not found"))
			return
		}

		if media.RemoteID != "" {
			ctx, cancel := context.WithTimeout(r.Context(), h.uploadTimeout)
			if err := h.attachments.Delete(ctx, media.RemoteID, media.Kind); err != nil {
				remoteErr := errs.NewRemoteDeleteError(media.RemoteID, err)
				h.logger.Warn().Err(remoteErr).Str("mediaID", mediaID.String()).Msg("Best-effort remote delete failed")
			}
			cancel()
		}

		if err := h.mediaRepo.Delete(mediaID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete media", "project_media", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "media deleted successfully",
		})
	}
}

// cleanupMedia bulk-removes rows violating the media invariant (empty
// URL or remote identifier). No remote calls are made: corrupt rows
// have no usable remote identifier to delete.
func (h mediaHandler) cleanupMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := h.mediaRepo.DeleteCorrupt()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("cleanup media", "project_media", err))
			return
		}

		h.logger.Info().Int64("removed", removed).Msg("Media cleanup complete")
		h.responder.WriteJSON(w, map[string]any{
			"status":  "success",
			"removed": removed,
		})
	}
}

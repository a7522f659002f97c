package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	attachments services.Attachments
}

func newProjectHandler(projectRepo *database.ProjectRepo, attachments services.Attachments) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		attachments: attachments,
	}
}

// projectRequest is the admin form payload. Absent fields decode to
// empty strings, which is the uniform default policy for optional
// fields on both create and edit.
type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tech        string `json:"tech"`
	GithubLink  string `json:"github_link"`
	DemoLink    string `json:"demo_link"`
	HasDemo     bool   `json:"has_demo"`
}

// addProject creates a new project. Title is the only required field;
// nothing is written when it is missing.
func (h projectHandler) addProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		project := models.Project{
			Title:       req.Title,
			Description: req.Description,
			Tech:        req.Tech,
			GithubLink:  req.GithubLink,
			DemoLink:    req.DemoLink,
			HasDemo:     req.HasDemo,
		}
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// editProject performs a full overwrite of all mutable fields. There are
// no partial-update semantics: omitted fields become empty, matching
// create's default policy.
func (h projectHandler) editProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		project := models.Project{
			ID:          existing.ID,
			Title:       req.Title,
			Description: req.Description,
			Tech:        req.Tech,
			GithubLink:  req.GithubLink,
			DemoLink:    req.DemoLink,
			HasDemo:     req.HasDemo,
			CreatedAt:   existing.CreatedAt,
		}
		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes the project and all of its media rows, then
// makes a best-effort attempt to delete each remote asset. Remote
// failures are logged and swallowed: the admin view must never get
// stuck on a remote outage.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseIDParam(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		for _, media := range existing.Media {
			if media.RemoteID == "" {
				continue
			}
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			if err := h.attachments.Delete(ctx, media.RemoteID, media.Kind); err != nil {
				remoteErr := errs.NewRemoteDeleteError(media.RemoteID, err)
				h.logger.Warn().Err(remoteErr).Str("mediaID", media.ID.String()).Msg("Best-effort remote delete failed")
			}
			cancel()
		}

		h.responder.WriteJSON(w, map[string]any{
			"status":       "success",
			"message":      "project deleted successfully",
			"mediaRemoved": len(existing.Media),
		})
	}
}

// parseIDParam extracts and parses a uuid path parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, *errs.ApiErr) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

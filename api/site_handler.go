package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// siteHandler serves the public pages and the admin overview. Rendering
// to HTML is the frontend's job; these endpoints return the entities.
type siteHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  *database.ProjectRepo
	mediaRepo    *database.ProjectMediaRepo
	blogPostRepo *database.BlogPostRepo
}

func newSiteHandler(projectRepo *database.ProjectRepo, mediaRepo *database.ProjectMediaRepo, blogPostRepo *database.BlogPostRepo) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		mediaRepo:    mediaRepo,
		blogPostRepo: blogPostRepo,
	}
}

// home returns a summary of the site's content
func (h siteHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectCount, err := h.projectRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count projects", "projects", err))
			return
		}
		postCount, err := h.blogPostRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"projects":  projectCount,
			"blogPosts": postCount,
		})
	}
}

// listProjects returns all projects with their media, newest first
func (h siteHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"projects": projects,
			"total":    len(projects),
		})
	}
}

// listBlogPosts returns all blog posts, newest first
func (h siteHandler) listBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.blogPostRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"blogPosts": posts,
			"total":     len(posts),
		})
	}
}

// getBlogPostBySlug returns a single post addressed by its stable slug
func (h siteHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.blogPostRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// adminOverview returns everything the admin view manages
func (h siteHandler) adminOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := ctxGetUserID(r.Context()); ok {
			h.logger.Debug().Str("userID", userID).Msg("Admin overview requested")
		}

		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}
		posts, err := h.blogPostRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}
		mediaCount, err := h.mediaRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count media", "project_media", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"projects":   projects,
			"blogPosts":  posts,
			"mediaCount": mediaCount,
		})
	}
}

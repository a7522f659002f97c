package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public pages and the session-guarded admin surface
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.siteHandler.home())
		r.Get("/projects", handlers.siteHandler.listProjects())
		r.Get("/blog", handlers.siteHandler.listBlogPosts())
		r.Get("/blog/{slug}", handlers.siteHandler.getBlogPostBySlug())

		r.Get("/login", handlers.authHandler.loginInfo())
		r.Post("/login", handlers.authHandler.login())
		r.Post("/logout", handlers.authHandler.logout())
	})

	// Admin routes: every mutation goes through the session guard
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/admin", handlers.siteHandler.adminOverview())

		r.Post("/admin/project/add", handlers.projectHandler.addProject())
		r.Post("/admin/project/edit/{projectID}", handlers.projectHandler.editProject())
		r.Post("/admin/project/delete/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/admin/project/upload/{projectID}", handlers.mediaHandler.uploadMedia())
		r.Post("/admin/project/media/delete/{mediaID}", handlers.mediaHandler.deleteMedia())
		r.Get("/admin/cleanup-media", handlers.mediaHandler.cleanupMedia())

		r.Post("/admin/blog/add", handlers.blogPostHandler.addBlogPost())
		r.Post("/admin/blog/edit/{blogPostID}", handlers.blogPostHandler.editBlogPost())
		r.Post("/admin/blog/delete/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
	})
}

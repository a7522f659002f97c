package api

import (
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/sessions"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, sessionStore sessions.Store, attachments services.Attachments, c map[string]string) *routeHandlers {
	sessionTTL := time.Duration(config.GetInt(c, "SESSION_TTL_SECONDS", 24*3600)) * time.Second
	uploadTimeout := time.Duration(config.GetInt(c, "UPLOAD_TIMEOUT_SECONDS", 30)) * time.Second

	return &routeHandlers{
		authHandler:     newAuthHandler(database.UserRepo(), sessionStore, sessionTTL),
		siteHandler:     newSiteHandler(database.ProjectRepo(), database.ProjectMediaRepo(), database.BlogPostRepo()),
		projectHandler:  newProjectHandler(database.ProjectRepo(), attachments),
		mediaHandler:    newMediaHandler(database.ProjectRepo(), database.ProjectMediaRepo(), attachments, uploadTimeout),
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo()),
	}
}

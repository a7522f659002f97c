package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sessionCookieName = "portfolio_session"

type authHandler struct {
	responder  Responder
	logger     zerolog.Logger
	userRepo   *database.UserRepo
	sessions   sessions.Store
	sessionTTL time.Duration
}

func newAuthHandler(userRepo *database.UserRepo, sessionStore sessions.Store, sessionTTL time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		userRepo:   userRepo,
		sessions:   sessionStore,
		sessionTTL: sessionTTL,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginInfo is the login entry point unauthenticated callers are pointed
// at. The API has no HTML form, so it describes the contract instead.
func (h authHandler) loginInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{
			"message": "POST {username, password} to /login to obtain a session",
		})
	}
}

// login verifies the supplied credentials against the stored hash and
// establishes a session on success. Failed logins change no state.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Username == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.sessions.Create(r.Context(), user.ID.String(), h.sessionTTL)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to create session")
			h.responder.WriteError(w, errs.NewInternalError("could not establish session"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		h.responder.WriteJSON(w, map[string]string{
			"status":   "success",
			"username": user.Username,
			"location": "/admin",
		})
	}
}

// logout invalidates the session unconditionally. Logging out without a
// session is a no-op, not an error.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
				h.logger.Error().Err(err).Msg("Failed to delete session")
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		h.responder.WriteJSON(w, map[string]string{
			"status":   "success",
			"location": "/",
		})
	}
}

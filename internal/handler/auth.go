package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-itinerary/internal/middleware"
)

const invalidCredentials = "Invalid credentials"

// loginForm handles GET /auth/login.
func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFrom(r.Context()).Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "login", page{Title: "Log in"})
}

// login handles POST /auth/login. On success the browser receives only the
// session id cookie; the API token stays server-side.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))

	sess, err := s.auth.Login(r.Context(), username, r.PostForm.Get("password"))
	switch {
	case err == nil:
	case isValidation(err):
		s.render(w, r, http.StatusUnprocessableEntity, "login", page{
			Title: "Log in", Error: "Username and password are required", Data: username,
		})
		return
	case isUnauthorized(err):
		s.render(w, r, http.StatusUnauthorized, "login", page{
			Title: "Log in", Error: invalidCredentials, Data: username,
		})
		return
	default:
		s.handleError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.ID.String(),
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.InfoContext(r.Context(), "user logged in", "username", sess.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout handles POST /auth/logout. It always clears the cookie, even when
// the session was already gone.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	if sess.ID != uuid.Nil {
		if err := s.auth.Logout(r.Context(), sess.ID); err != nil {
			s.log.WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

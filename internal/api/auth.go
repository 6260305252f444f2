package api

import (
	"net/http"

	"github.com/kalambet/autopro/internal/session"
)

// RequireSession rejects requests with 401 unless a user is signed in.
func RequireSession(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.Authenticated() {
				httpError(w, http.StatusUnauthorized, "authentication_error", "sign in required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		user, err := deps.Session.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func handleRegister(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.Registration
		if !decodeBody(w, r, &req) {
			return
		}
		user, err := deps.Session.Register(r.Context(), req)
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func handleLogout(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Session.Logout(); err != nil {
			failWith(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

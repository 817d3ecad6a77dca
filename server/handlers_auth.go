package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-admin-gate/credentials"
	gateerrors "github.com/jrsteele09/go-admin-gate/internal/errors"
	"github.com/jrsteele09/go-admin-gate/session"
)

const contentTypeJSON = "application/json"

// AuthResult is the JSON body returned by the credential endpoints.
type AuthResult struct {
	Success   bool   `json:"success,omitempty"`
	Error     string `json:"error,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// SessionResponse is the JSON body returned by GET /auth/session.
type SessionResponse struct {
	Session *SessionClaims `json:"session"`
}

// SessionClaims is the wire form of verified session claims.
type SessionClaims struct {
	Subject   string `json:"subject"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// StatusHandler reports whether initial setup has happened (GET /auth/status).
// The login page uses this to decide which form to render.
func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initialized, err := s.sessions.Initialized()
		if err != nil {
			s.writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"initialized": initialized})
	}
}

// SetupHandler sets the admin password for the first time (POST /auth/setup).
func (s *Server) SetupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := r.PostFormValue("password")
		if password == "" {
			writeJSON(w, http.StatusBadRequest, AuthResult{Error: "password is required"})
			return
		}

		// The original form also confirms the password client-side; enforce it
		// here too when the field is submitted.
		if confirm := r.PostFormValue("confirm_password"); confirm != "" && confirm != password {
			writeJSON(w, http.StatusBadRequest, AuthResult{Error: "passwords do not match"})
			return
		}

		if s.config.GetRequireStrongPassword() {
			if err := credentials.ValidatePasswordStrength(password); err != nil {
				writeJSON(w, http.StatusBadRequest, AuthResult{Error: err.Error()})
				return
			}
		}

		result, err := s.sessions.InitialSetup(password)
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		s.SetSessionCookie(w, r, result.Token, result.ExpiresAt)
		writeJSON(w, http.StatusOK, AuthResult{Success: true, ExpiresAt: result.ExpiresAt.Unix()})
	}
}

// LoginHandler verifies the admin password and starts a session (POST /auth/login).
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := r.PostFormValue("password")
		if password == "" {
			writeJSON(w, http.StatusBadRequest, AuthResult{Error: "password is required"})
			return
		}

		result, err := s.sessions.Login(password)
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		s.SetSessionCookie(w, r, result.Token, result.ExpiresAt)
		writeJSON(w, http.StatusOK, AuthResult{Success: true, ExpiresAt: result.ExpiresAt.Unix()})
	}
}

// LogoutHandler discards the caller's session (POST /auth/logout).
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = s.sessions.Logout()
		s.ClearSessionCookie(w, r)
		writeJSON(w, http.StatusOK, AuthResult{Success: true})
	}
}

// SessionHandler returns the caller's current session claims, or a null
// session when unauthenticated (GET /auth/session). Pure read; the expiry is
// not slid here.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := s.sessions.CurrentSession(tokenFromRequest(r))
		if claims == nil {
			writeJSON(w, http.StatusOK, SessionResponse{})
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{Session: toSessionClaims(claims)})
	}
}

// AdminDashboardHandler is the protected landing route behind the gate.
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			// RequireSessionAuth always injects claims; reaching here means the
			// route was registered without it.
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user":       claims.Subject,
			"expires_at": claims.ExpiresAt.Unix(),
		})
	}
}

// writeAuthError maps the session manager's error taxonomy onto HTTP results.
// The messages are the user-facing sentinel strings; internal detail from
// wrapping stays in the logs.
func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case gateerrors.Is(err, gateerrors.ErrInvalidCredential):
		writeJSON(w, http.StatusUnauthorized, AuthResult{Error: gateerrors.ErrInvalidCredential.Error()})
	case gateerrors.Is(err, gateerrors.ErrNotInitialized):
		writeJSON(w, http.StatusConflict, AuthResult{Error: gateerrors.ErrNotInitialized.Error()})
	case gateerrors.Is(err, gateerrors.ErrAlreadyInitialized):
		writeJSON(w, http.StatusConflict, AuthResult{Error: gateerrors.ErrAlreadyInitialized.Error()})
	case gateerrors.Is(err, gateerrors.ErrStoreUnavailable):
		log.Err(err).Msg("credential store failure")
		writeJSON(w, http.StatusServiceUnavailable, AuthResult{Error: gateerrors.ErrStoreUnavailable.Error()})
	default:
		log.Err(err).Msg("auth operation failed")
		writeJSON(w, http.StatusInternalServerError, AuthResult{Error: "internal error"})
	}
}

func toSessionClaims(claims *session.Claims) *SessionClaims {
	return &SessionClaims{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to encode response body")
	}
}

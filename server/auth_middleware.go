package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-admin-gate/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified session claims
	ContextKeyClaims ContextKey = "claims"
)

// ClaimsFromContext returns the session claims injected by RequireSessionAuth.
func ClaimsFromContext(ctx context.Context) *session.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*session.Claims)
	return claims
}

// RequireSessionAuth is middleware for routes behind the admin gate. It
// verifies the session cookie and, on success, slides the expiry by minting a
// replacement token on every request - an active session never expires, an
// idle one dies after the TTL.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			result, err := s.sessions.Renew(tokenFromRequest(r))
			if err != nil {
				log.Err(err).Msg("session renewal failed")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if result == nil {
				// Missing, tampered or expired token - all the same outcome
				http.Redirect(w, r, RouteLogin+"?error=Session+expired", http.StatusSeeOther)
				return
			}

			s.SetSessionCookie(w, r, result.Token, result.ExpiresAt)

			ctx := context.WithValue(r.Context(), ContextKeyClaims, &result.Claims)
			next(w, r.WithContext(ctx))
		}
	}
}

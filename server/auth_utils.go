package server

import (
	"net/http"
	"time"
)

// sessionCookieName is the cookie carrying the signed session token
const sessionCookieName = "session"

// SetSessionCookie hands the session token to the caller. The cookie expiry
// mirrors the claims' expiry; the token itself is still the source of truth.
func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

// ClearSessionCookie overwrites the caller's stored token with an already
// expired empty value. Logout is purely client-side discard; a copied token
// elsewhere stays valid until its embedded expiry.
func (s *Server) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// tokenFromRequest reads the presented session token, or "" when absent.
func tokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

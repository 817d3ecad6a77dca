package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-admin-gate/credentials/repofake"
	"github.com/jrsteele09/go-admin-gate/internal/config"
	"github.com/jrsteele09/go-admin-gate/server"
)

const testPassword = "secret1"

// serverFixture holds all test dependencies
type serverFixture struct {
	store  *repofake.FakeCredentialStore
	server *server.Server
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	store := repofake.NewFakeCredentialStore()
	srv, err := server.New(config.New(), store)
	require.NoError(t, err)

	return &serverFixture{
		store:  store,
		server: srv,
	}
}

// postForm submits a form-encoded POST, attaching cookie when non-nil
func (f *serverFixture) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *serverFixture) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

// setUp runs initial setup and returns the minted session cookie
func (f *serverFixture) setUp(t *testing.T) *http.Cookie {
	t.Helper()

	rec := f.postForm(t, server.RouteAuthSetup, url.Values{"password": {testPassword}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session" {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestStatusFlipsAfterSetup(t *testing.T) {
	f := newServerFixture(t)

	rec := f.get(t, server.RouteAuthStatus, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decodeBody[map[string]bool](t, rec)["initialized"])

	f.setUp(t)

	rec = f.get(t, server.RouteAuthStatus, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeBody[map[string]bool](t, rec)["initialized"])
}

func TestSetupMintsHTTPOnlySessionCookie(t *testing.T) {
	f := newServerFixture(t)

	rec := f.postForm(t, server.RouteAuthSetup, url.Values{
		"password":         {testPassword},
		"confirm_password": {testPassword},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Expires.IsZero())
}

func TestSetupRejectsMismatchedConfirmation(t *testing.T) {
	f := newServerFixture(t)

	rec := f.postForm(t, server.RouteAuthSetup, url.Values{
		"password":         {testPassword},
		"confirm_password": {"different"},
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupRejectsEmptyPassword(t *testing.T) {
	f := newServerFixture(t)

	rec := f.postForm(t, server.RouteAuthSetup, url.Values{}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupIsOneTimeOnly(t *testing.T) {
	f := newServerFixture(t)
	f.setUp(t)

	rec := f.postForm(t, server.RouteAuthSetup, url.Values{"password": {"another"}}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBeforeSetup(t *testing.T) {
	f := newServerFixture(t)

	rec := f.postForm(t, server.RouteAuthLogin, url.Values{"password": {"anything"}}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	f := newServerFixture(t)
	setupCookie := f.setUp(t)

	rec := f.postForm(t, server.RouteAuthLogin, url.Values{"password": {"wrong"}}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.postForm(t, server.RouteAuthLogin, url.Values{"password": {testPassword}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	loginCookie := sessionCookie(t, rec)
	require.NotEqual(t, setupCookie.Value, loginCookie.Value)
}

func TestSessionEndpoint(t *testing.T) {
	f := newServerFixture(t)
	cookie := f.setUp(t)

	rec := f.get(t, server.RouteAuthSession, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Session *struct {
			Subject string `json:"subject"`
		} `json:"session"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Session)
	require.Equal(t, "admin", body.Session.Subject)

	rec = f.get(t, server.RouteAuthSession, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Nil(t, body.Session)
}

func TestAdminRouteRequiresSession(t *testing.T) {
	f := newServerFixture(t)
	f.setUp(t)

	rec := f.get(t, server.RouteAdminDashboard, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Location"), server.RouteLogin))

	rec = f.get(t, server.RouteAdminDashboard, &http.Cookie{Name: "session", Value: "garbage"})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestAdminRouteRenewsSession(t *testing.T) {
	f := newServerFixture(t)
	cookie := f.setUp(t)

	rec := f.get(t, server.RouteAdminDashboard, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	renewed := sessionCookie(t, rec)
	require.NotEqual(t, cookie.Value, renewed.Value)
	require.False(t, renewed.Expires.Before(cookie.Expires))

	// The renewed cookie works for the next request
	rec = f.get(t, server.RouteAdminDashboard, renewed)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	f := newServerFixture(t)
	cookie := f.setUp(t)

	rec := f.postForm(t, server.RouteAuthLogout, url.Values{}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := sessionCookie(t, rec)
	require.Empty(t, cleared.Value)
	require.Less(t, cleared.MaxAge, 0)
}

func TestStoreFailureSurfacesAsServiceError(t *testing.T) {
	f := newServerFixture(t)
	f.store.SetFailing(true)

	rec := f.postForm(t, server.RouteAuthLogin, url.Values{"password": {testPassword}}, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = f.get(t, server.RouteAuthStatus, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoginPageSwitchesForms(t *testing.T) {
	f := newServerFixture(t)

	rec := f.get(t, server.RouteLogin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Set Initial Password")

	f.setUp(t)

	rec = f.get(t, server.RouteLogin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sign In")
}

package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName        string
	IsInitialSetup bool
	Error          string
}

// The admin gate has a single page of UI, so the markup lives inline rather
// than in a static file tree.
const loginPageTemplate = `<!DOCTYPE html>
<html>
<head><title>{{.AppName}}</title></head>
<body>
  <h1>{{if .IsInitialSetup}}Set Initial Password{{else}}Sign In{{end}}</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  {{if .IsInitialSetup}}
  <form method="post" action="/auth/setup">
    <label for="password">New Password</label>
    <input id="password" name="password" type="password" required>
    <label for="confirm_password">Confirm Password</label>
    <input id="confirm_password" name="confirm_password" type="password" required>
    <button type="submit">Set Password</button>
  </form>
  {{else}}
  <form method="post" action="/auth/login">
    <label for="password">Password</label>
    <input id="password" name="password" type="password" required>
    <button type="submit">Sign In</button>
  </form>
  {{end}}
</body>
</html>`

// LoginPageHandler displays the login page (GET /login). When no credential
// has been stored yet it renders the initial setup form instead.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl, err := template.New("login").Parse(loginPageTemplate)
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		initialized, err := s.sessions.Initialized()
		if err != nil {
			log.Err(err).Msg("credential store failure")
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		data := LoginPageData{
			AppName:        s.config.GetAppName(),
			IsInitialSetup: !initialized,
			Error:          r.URL.Query().Get("error"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login page")
		}
	}
}

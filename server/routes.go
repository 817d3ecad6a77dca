package server

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, s.LoginPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthSetup, s.SetupHandler())
	s.RegisterRouteFunc("POST "+RouteAuthLogin, s.LoginHandler())
	s.RegisterRouteFunc("POST "+RouteAuthLogout, s.LogoutHandler())

	// Session state
	s.RegisterRouteFunc("GET "+RouteAuthSession, s.SessionHandler())
	s.RegisterRouteFunc("GET "+RouteAuthStatus, s.StatusHandler())

	// Admin routes (require a valid session cookie; each hit slides the expiry)
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleWare(s.RequireSessionAuth())...))
}

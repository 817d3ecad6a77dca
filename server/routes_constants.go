package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin       = "/login"
	RouteAuthSetup   = "/auth/setup"
	RouteAuthLogin   = "/auth/login"
	RouteAuthLogout  = "/auth/logout"
	RouteAuthSession = "/auth/session"
	RouteAuthStatus  = "/auth/status"

	// Admin Routes
	RouteAdminDashboard = "/admin/dashboard"
)

package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"intrack/handlers"
	"intrack/middleware"
	"intrack/models"
	ws "intrack/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly  = []string{"GET", "OPTIONS"}
	MethodsPostOnly = []string{"POST", "OPTIONS"}
)

// authed wraps a handler in session authentication.
func authed(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(h)
}

// roleGated wraps a handler in authentication plus a role gate.
func roleGated(h http.HandlerFunc, roles ...string) http.Handler {
	return middleware.AuthMiddleware(middleware.RequireRoles(roles...)(h))
}

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION
	// ====================
	r.HandleFunc("/auth/register", handlers.Register).Methods(MethodsPostOnly...)
	r.HandleFunc("/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.Handle("/auth/me", authed(handlers.Me)).Methods(MethodsGetOnly...)
	r.Handle("/auth/logout", authed(handlers.Logout)).Methods(MethodsPostOnly...)

	// ====================
	// PROJECTS
	// ====================
	r.Handle("/projects", roleGated(handlers.CreateProject,
		models.RoleAdmin, models.RoleManager)).Methods(MethodsPostOnly...)
	r.Handle("/projects", authed(handlers.ListProjects)).Methods(MethodsGetOnly...)
	r.Handle("/projects/{id}", authed(handlers.GetProject)).Methods(MethodsGetOnly...)

	// ====================
	// EXPENSES
	// ====================
	r.Handle("/expenses", roleGated(handlers.CreateExpense,
		models.RoleEngineer, models.RoleManager, models.RoleAdmin)).Methods(MethodsPostOnly...)
	r.Handle("/expenses", authed(handlers.ListExpenses)).Methods(MethodsGetOnly...)
	// Stage-dependent role gating happens in the workflow, not here.
	r.Handle("/expenses/{id}/approve", authed(handlers.ApproveExpense)).Methods(MethodsPostOnly...)

	// ====================
	// LEAVES
	// ====================
	r.Handle("/leaves", authed(handlers.CreateLeave)).Methods(MethodsPostOnly...)
	r.Handle("/leaves", authed(handlers.ListLeaves)).Methods(MethodsGetOnly...)
	r.Handle("/leaves/{id}/approve", roleGated(handlers.ApproveLeave,
		models.RoleManager, models.RoleAdmin)).Methods(MethodsPostOnly...)

	// ====================
	// DOCUMENTS
	// ====================
	r.Handle("/documents", roleGated(handlers.CreateDocument,
		models.RoleEngineer, models.RoleManager, models.RoleAdmin)).Methods(MethodsPostOnly...)
	r.Handle("/documents", authed(handlers.ListDocuments)).Methods(MethodsGetOnly...)

	// ====================
	// AUDIT TRAIL
	// ====================
	r.Handle("/audit", roleGated(handlers.ListAuditLogs,
		models.RoleAdmin)).Methods(MethodsGetOnly...)

	// ====================
	// EVENT STREAM
	// ====================
	r.HandleFunc("/ws/events", ws.ServeEvents)
}

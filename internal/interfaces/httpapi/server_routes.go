package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDashboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
	mux.HandleFunc("GET /v1/owners", handler.ListOwners)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/schedule", handler.GetSchedule)
}

func registerRefreshRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/refresh/status", handler.GetRefreshStatus)
	mux.HandleFunc("POST /v1/refresh", handler.TriggerRefresh)
	mux.HandleFunc("PUT /v1/auto-refresh", handler.SetAutoRefresh)
}

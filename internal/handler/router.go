package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/propmgmt/internal/auth"
	"github.com/segyhp/propmgmt/internal/logging"
)

// Handlers groups everything the router mounts. Auth is nil when login is disabled.
type Handlers struct {
	Health     *HealthHandler
	Reports    *ReportHandler
	Management *ManagementHandler
	Viewer     *ViewerHandler
	Assets     *AssetsHandler
	Auth       *AuthHandler
}

// NewRouter wires every route. When authenticate is set the API and the viewer
// require a valid token and deletes require the admin group.
func NewRouter(h Handlers, logger *slog.Logger, authenticate func(http.Handler) http.Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(logging.RequestID, logging.Middleware(logger))

	protect := func(next http.Handler) http.Handler { return next }
	adminOnly := func(next http.HandlerFunc) http.Handler { return next }
	if authenticate != nil {
		protect = authenticate
		adminOnly = func(next http.HandlerFunc) http.Handler { return auth.RequireGroup(auth.AdminGroup)(next) }
	}

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods("GET")
	router.HandleFunc("/health/ready", h.Health.Ready).Methods("GET")

	if h.Assets != nil {
		router.HandleFunc("/static/{path:.+}", h.Assets.Serve).Methods("GET")
	}

	if h.Auth != nil {
		router.HandleFunc("/auth/login", h.Auth.Login).Methods("GET")
		router.HandleFunc("/auth/callback", h.Auth.Callback).Methods("GET")
		router.HandleFunc("/auth/logout", h.Auth.Logout).Methods("GET")
		router.Handle("/auth/me", protect(http.HandlerFunc(h.Auth.Me))).Methods("GET")
	}

	// Report viewer
	viewer := router.PathPrefix("/report-viewer").Subrouter()
	viewer.Use(protect)
	viewer.HandleFunc("/", h.Viewer.Home).Methods("GET")
	viewer.HandleFunc("/property", h.Viewer.Portfolio).Methods("GET")
	viewer.HandleFunc("/property/{id}", h.Viewer.Property).Methods("GET")
	viewer.HandleFunc("/unit/{id}", h.Viewer.Unit).Methods("GET")
	viewer.HandleFunc("/tenant/{id}", h.Viewer.Tenant).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(protect)

	api.HandleFunc("/reports/balance", h.Reports.BalanceReport).Methods("GET")
	api.HandleFunc("/reports/balance/export", h.Reports.Export).Methods("GET")
	api.HandleFunc("/reports/balance/tenant/{id}", h.Reports.TenantBalance).Methods("GET")
	api.HandleFunc("/reports/balance/unit/{id}", h.Reports.UnitBalance).Methods("GET")
	api.HandleFunc("/reports/balance/property/{id}", h.Reports.PropertyBalance).Methods("GET")
	api.HandleFunc("/reports/summary/property/{id}", h.Reports.PropertySummary).Methods("GET")

	m := h.Management
	api.HandleFunc("/properties", m.ListProperties).Methods("GET")
	api.HandleFunc("/properties", m.CreateProperty).Methods("POST")
	api.HandleFunc("/properties/{id}", m.GetProperty).Methods("GET")
	api.HandleFunc("/properties/{id}", m.UpdateProperty).Methods("PUT")
	api.Handle("/properties/{id}", adminOnly(m.DeleteProperty)).Methods("DELETE")
	api.HandleFunc("/properties/{id}/units", m.ListPropertyUnits).Methods("GET")
	api.HandleFunc("/properties/{id}/leases", m.ListPropertyLeases).Methods("GET")

	api.HandleFunc("/units", m.ListUnits).Methods("GET")
	api.HandleFunc("/units", m.CreateUnit).Methods("POST")
	api.HandleFunc("/units/{id}", m.GetUnit).Methods("GET")
	api.HandleFunc("/units/{id}", m.UpdateUnit).Methods("PUT")
	api.Handle("/units/{id}", adminOnly(m.DeleteUnit)).Methods("DELETE")
	api.HandleFunc("/units/{id}/tenants", m.ListUnitTenants).Methods("GET")
	api.HandleFunc("/units/{id}/leases", m.ListUnitLeases).Methods("GET")

	api.HandleFunc("/tenants", m.ListTenants).Methods("GET")
	api.HandleFunc("/tenants", m.CreateTenant).Methods("POST")
	api.HandleFunc("/tenants/{id}", m.GetTenant).Methods("GET")
	api.HandleFunc("/tenants/{id}", m.UpdateTenant).Methods("PUT")
	api.Handle("/tenants/{id}", adminOnly(m.DeleteTenant)).Methods("DELETE")
	api.HandleFunc("/tenants/{id}/leases", m.ListTenantLeases).Methods("GET")
	api.HandleFunc("/tenants/{id}/payments", m.ListTenantPayments).Methods("GET")

	api.HandleFunc("/leases", m.ListLeases).Methods("GET")
	api.HandleFunc("/leases", m.CreateLease).Methods("POST")
	api.HandleFunc("/leases/{id}", m.GetLease).Methods("GET")
	api.HandleFunc("/leases/{id}", m.UpdateLease).Methods("PUT")
	api.Handle("/leases/{id}", adminOnly(m.DeleteLease)).Methods("DELETE")
	api.HandleFunc("/leases/{id}/payments", m.ListLeasePayments).Methods("GET")

	api.HandleFunc("/payments", m.ListPayments).Methods("GET")
	api.HandleFunc("/payments", m.CreatePayment).Methods("POST")
	api.HandleFunc("/payments/{id}", m.GetPayment).Methods("GET")
	api.HandleFunc("/payments/{id}", m.UpdatePayment).Methods("PUT")
	api.Handle("/payments/{id}", adminOnly(m.DeletePayment)).Methods("DELETE")

	return router
}

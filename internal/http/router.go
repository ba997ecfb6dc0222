package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transport-backend/internal/handlers"
	"transport-backend/internal/middleware"
)

func NewRouter(
	invoiceHandler *handlers.InvoiceHandler,
	customerHandler *handlers.CustomerHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Request metrics are recorded inside mux routing so the path template
	// is available as a bounded label.
	r.Use(middleware.MetricsMiddleware)

	// Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.HandleFunc("", invoiceHandler.SaveInvoice).Methods("POST")
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/next-number", invoiceHandler.NextNumber).Methods("GET")
	invoicesAPI.HandleFunc("/export", invoiceHandler.ExportDraftPDF).Methods("POST")
	invoicesAPI.HandleFunc("/{invoiceNo}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{invoiceNo}", invoiceHandler.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{invoiceNo}/pdf", invoiceHandler.ExportPDF).Methods("GET")

	// Customer templates
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard", dashboardHandler.GetStats).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

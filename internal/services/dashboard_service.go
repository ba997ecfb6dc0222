package services

import (
	"context"
	"encoding/json"

	"transport-backend/internal/cache"
	"transport-backend/internal/models"
	"transport-backend/internal/repositories"
)

// DashboardStats is the aggregate view served on the landing page.
type DashboardStats struct {
	TotalInvoices  int                      `json:"total_invoices"`
	TotalCustomers int                      `json:"total_customers"`
	RevenueTotal   string                   `json:"revenue_total"`
	RecentInvoices []*models.InvoiceSummary `json:"recent_invoices"`
}

type DashboardService struct {
	Invoices  *repositories.InvoiceRepository
	Customers *repositories.CustomerRepository
}

func NewDashboardService(inv *repositories.InvoiceRepository, cust *repositories.CustomerRepository) *DashboardService {
	return &DashboardService{Invoices: inv, Customers: cust}
}

func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if data, ok := cache.GetDashboardStats(ctx); ok {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	invoiceCount, err := s.Invoices.Count(ctx)
	if err != nil {
		return nil, err
	}
	customerCount, err := s.Customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Invoices.SumTotals(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Invoices.ListRecent(ctx, 5)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalInvoices:  invoiceCount,
		TotalCustomers: customerCount,
		RevenueTotal:   revenue.StringFixed(2),
		RecentInvoices: recent,
	}
	if data, err := json.Marshal(stats); err == nil {
		cache.SetDashboardStats(ctx, data)
	}
	return stats, nil
}

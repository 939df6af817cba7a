package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/pkg/csvexport"
)

// Revenue is the realized income of a set of orders.
type Revenue struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DashboardStats summarizes a set of orders by status.
type DashboardStats struct {
	TotalOrders  int            `json:"total_orders"`
	StatusCounts map[string]int `json:"status_counts"`
	Revenue      Revenue        `json:"revenue"`
}

// ComputeRevenue sums the total amount of orders in the revenue set.
func ComputeRevenue(orders []models.Order) Revenue {
	rev := Revenue{Total: decimal.Zero}
	for _, o := range orders {
		if o.Status.IsRevenue() {
			rev.Total = rev.Total.Add(o.TotalAmount)
			rev.Count++
		}
	}
	return rev
}

// ComputeDashboardStats counts orders per stored status code. Every registered status
// is present, with zero when absent from the data.
func ComputeDashboardStats(orders []models.Order) DashboardStats {
	stats := DashboardStats{
		TotalOrders:  len(orders),
		StatusCounts: make(map[string]int),
		Revenue:      ComputeRevenue(orders),
	}
	for _, s := range models.AllOrderStatuses() {
		stats.StatusCounts[string(s)] = 0
	}
	for _, o := range orders {
		stats.StatusCounts[string(o.Status)]++
	}
	return stats
}

// csvHeader is the column order of the order export.
var csvHeader = []string{
	"Sipariş No", "Durum", "Veli Adı", "Öğrenci Adı", "Telefon", "Sınıf", "Paket", "Tutar", "Sipariş Tarihi",
}

const csvDateLayout = "02.01.2006"

// ReportService builds read-only projections over orders.
type ReportService struct {
	orders repositories.OrderRepository
	loc    *time.Location
}

// NewReportService creates a new ReportService. Dates are rendered in loc.
func NewReportService(orders repositories.OrderRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{orders: orders, loc: loc}
}

// Dashboard returns statistics over the orders matching the filter.
func (s *ReportService) Dashboard(ctx context.Context, filter models.OrderFilter) (DashboardStats, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return DashboardStats{}, err
	}
	return ComputeDashboardStats(orders), nil
}

// ExportOrdersCSV writes the orders matching the filter as CSV.
func (s *ReportService) ExportOrdersCSV(ctx context.Context, w io.Writer, filter models.OrderFilter) (int, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	if err := WriteOrdersCSV(w, orders, s.loc); err != nil {
		return 0, err
	}
	return len(orders), nil
}

// WriteOrdersCSV renders orders with localized status labels.
func WriteOrdersCSV(w io.Writer, orders []models.Order, loc *time.Location) error {
	cw := csvexport.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range orders {
		var className, packageName string
		if o.Class != nil {
			className = o.Class.Name
		}
		if o.Package != nil {
			packageName = o.Package.Name
		}
		row := []string{
			o.OrderNumber,
			o.Status.Label(),
			o.ParentName,
			o.StudentName,
			o.ParentPhone,
			className,
			packageName,
			o.TotalAmount.StringFixed(2),
			o.CreatedAt.In(loc).Format(csvDateLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", o.OrderNumber, err)
		}
	}
	return cw.Flush()
}

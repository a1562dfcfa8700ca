// internal/service/report_service.go
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
)

// DashboardStats is the read-side summary shown on the dashboard. All values
// derive from the item set; nothing here is stored.
type DashboardStats struct {
	TotalItems        int                        `json:"total_items"`
	AvailableItems    int                        `json:"available_items"`
	ReservedItems     int                        `json:"reserved_items"`
	SoldItems         int                        `json:"sold_items"`
	TotalRevenue      decimal.Decimal            `json:"total_revenue"`
	TotalCost         decimal.Decimal            `json:"total_cost"`
	TotalProfit       decimal.Decimal            `json:"total_profit"`
	ProfitMarginPct   decimal.Decimal            `json:"profit_margin_pct"`
	SalesByCategory   map[string]decimal.Decimal `json:"sales_by_category"`
	SalesByPlatform   map[string]int             `json:"sales_by_platform"`
}

// SaleRow is one line of the sales report.
type SaleRow struct {
	Item   domain.Item     `json:"item"`
	Profit decimal.Decimal `json:"profit"`
}

// ReportService derives dashboards, sales listings, and CSV exports from the
// item set. Pure read-side projections; it never writes.
type ReportService interface {
	Dashboard(ctx context.Context, userID int64) (*DashboardStats, error)
	SalesReport(ctx context.Context, userID int64) ([]SaleRow, error)
	// WriteSalesCSV streams the sales report as CSV.
	WriteSalesCSV(ctx context.Context, userID int64, w io.Writer) error
	// WriteClientHistoryCSV streams a client's purchase history as CSV.
	WriteClientHistoryCSV(ctx context.Context, userID, clientID int64, w io.Writer) error
}

type reportService struct {
	dbExecutor repository.DBExecutor
	itemRepo   repository.ItemRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(dbExecutor repository.DBExecutor, itemRepo repository.ItemRepository) ReportService {
	return &reportService{dbExecutor: dbExecutor, itemRepo: itemRepo}
}

func (s *reportService) Dashboard(ctx context.Context, userID int64) (*DashboardStats, error) {
	items, err := s.itemRepo.ListItems(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return ComputeDashboard(items), nil
}

// ComputeDashboard folds the item set into dashboard statistics.
func ComputeDashboard(items []domain.Item) *DashboardStats {
	stats := &DashboardStats{
		TotalRevenue:    decimal.Zero,
		TotalCost:       decimal.Zero,
		TotalProfit:     decimal.Zero,
		ProfitMarginPct: decimal.Zero,
		SalesByCategory: map[string]decimal.Decimal{},
		SalesByPlatform: map[string]int{},
	}
	for i := range items {
		item := &items[i]
		stats.TotalItems++
		switch item.Status {
		case domain.ItemStatusAvailable:
			stats.AvailableItems++
		case domain.ItemStatusReserved:
			stats.ReservedItems++
		case domain.ItemStatusSold:
			stats.SoldItems++
			stats.TotalRevenue = stats.TotalRevenue.Add(item.SellingPrice)
			stats.TotalCost = stats.TotalCost.Add(item.CostPrice)
			stats.TotalProfit = stats.TotalProfit.Add(item.Profit())
			if item.Category != "" {
				stats.SalesByCategory[item.Category] = stats.SalesByCategory[item.Category].Add(item.SellingPrice)
			}
			for _, p := range item.SoldPlatforms {
				stats.SalesByPlatform[p]++
			}
		}
	}
	if stats.TotalRevenue.IsPositive() {
		stats.ProfitMarginPct = stats.TotalProfit.Div(stats.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return stats
}

func (s *reportService) SalesReport(ctx context.Context, userID int64) ([]SaleRow, error) {
	items, err := s.itemRepo.ListSoldItems(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	rows := make([]SaleRow, 0, len(items))
	for i := range items {
		rows = append(rows, SaleRow{Item: items[i], Profit: items[i].Profit()})
	}
	return rows, nil
}

var salesCSVHeader = []string{"Nama Item", "Kategori", "Harga Kos", "Harga Jual", "Untung", "Tarikh Jual", "Platform"}

func (s *reportService) WriteSalesCSV(ctx context.Context, userID int64, w io.Writer) error {
	rows, err := s.SalesReport(ctx, userID)
	if err != nil {
		return err
	}
	return writeItemCSV(w, rowItems(rows))
}

func (s *reportService) WriteClientHistoryCSV(ctx context.Context, userID, clientID int64, w io.Writer) error {
	items, err := s.itemRepo.ListItemsByClient(ctx, s.dbExecutor, userID, clientID)
	if err != nil {
		return fmt.Errorf("client history: %w", err)
	}
	return writeItemCSV(w, items)
}

func rowItems(rows []SaleRow) []domain.Item {
	items := make([]domain.Item, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].Item)
	}
	return items
}

func writeItemCSV(w io.Writer, items []domain.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(salesCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range items {
		item := &items[i]
		dateSold := ""
		if item.DateSold != nil {
			dateSold = item.DateSold.Format("2006-01-02")
		}
		platforms := ""
		if len(item.SoldPlatforms) > 0 {
			platforms = item.SoldPlatforms[0]
			for _, p := range item.SoldPlatforms[1:] {
				platforms += "; " + p
			}
		}
		record := []string{
			item.Name,
			item.Category,
			item.CostPrice.StringFixed(2),
			item.SellingPrice.StringFixed(2),
			item.Profit().StringFixed(2),
			dateSold,
			platforms,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

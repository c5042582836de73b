package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"retailboard/internal/analytics"
	"retailboard/internal/config"
	"retailboard/internal/exporter"
	"retailboard/internal/filter"
	"retailboard/internal/format"
	"retailboard/internal/infrastructure"
	"retailboard/internal/store"
)

// DashboardService serves the dashboard's aggregate views over the loaded
// dataset. The store is immutable after startup, so the service is safe for
// concurrent use.
type DashboardService struct {
	store     *store.Store
	dashboard config.DashboardConfig
	logger    *slog.Logger
	metrics   *infrastructure.BusinessMetrics

	csvExporter *exporter.DashboardExporter
	workbook    *exporter.WorkbookBuilder
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(s *store.Store, dashboard config.DashboardConfig, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:       s,
		dashboard:   dashboard,
		logger:      logger,
		metrics:     metrics,
		csvExporter: exporter.NewDashboardExporter(),
		workbook:    exporter.NewWorkbookBuilder(),
	}
}

// KPIView pairs raw KPI values with their display strings.
type KPIView struct {
	analytics.KPIs
	RevenueDisplay            string `json:"revenue_display"`
	TransactionsDisplay       string `json:"transactions_display"`
	CustomersDisplay          string `json:"customers_display"`
	AvgBasketDisplay          string `json:"avg_basket_display"`
	RevenuePerCustomerDisplay string `json:"revenue_per_customer_display"`
}

// FilterOptions describes the selectable filter inputs derived from the
// dataset: the country list and the overall date bounds.
type FilterOptions struct {
	Countries []string  `json:"countries"`
	MinDate   time.Time `json:"min_date"`
	MaxDate   time.Time `json:"max_date"`
}

// KPIs computes the summary metrics for the filtered view.
func (s *DashboardService) KPIs(ctx context.Context, p filter.Params) KPIView {
	view := s.view(ctx, p)
	k := analytics.ComputeKPIs(view)
	infrastructure.RecordAggregation(ctx, s.metrics, "kpis")

	return KPIView{
		KPIs:                      k,
		RevenueDisplay:            format.Currency(k.Revenue),
		TransactionsDisplay:       format.Count(k.Transactions),
		CustomersDisplay:          format.Count(k.Customers),
		AvgBasketDisplay:          format.Currency(k.AvgBasket),
		RevenuePerCustomerDisplay: format.Currency(k.RevenuePerCustomer),
	}
}

// RevenueByCountry returns the country ranking for the filtered view.
func (s *DashboardService) RevenueByCountry(ctx context.Context, p filter.Params, topN int) []analytics.CountryRevenue {
	out := analytics.RevenueByCountry(s.view(ctx, p), s.clampTopN(topN))
	infrastructure.RecordAggregation(ctx, s.metrics, "revenue_by_country")
	return out
}

// TopProducts returns the product ranking for the filtered view.
func (s *DashboardService) TopProducts(ctx context.Context, p filter.Params, topN int) []analytics.ProductRevenue {
	out := analytics.TopProducts(s.view(ctx, p), s.clampTopN(topN))
	infrastructure.RecordAggregation(ctx, s.metrics, "top_products")
	return out
}

// TopCustomers returns the customer ranking for the filtered view.
func (s *DashboardService) TopCustomers(ctx context.Context, p filter.Params, topN int) []analytics.CustomerRevenue {
	out := analytics.TopCustomers(s.view(ctx, p), s.clampTopN(topN))
	infrastructure.RecordAggregation(ctx, s.metrics, "top_customers")
	return out
}

// RevenueByMonth returns the monthly trend for the filtered view.
func (s *DashboardService) RevenueByMonth(ctx context.Context, p filter.Params) []analytics.MonthRevenue {
	out := analytics.RevenueByMonth(s.view(ctx, p))
	infrastructure.RecordAggregation(ctx, s.metrics, "revenue_by_month")
	return out
}

// RevenueByWeekday returns the day-of-week view for the filtered view.
func (s *DashboardService) RevenueByWeekday(ctx context.Context, p filter.Params) []analytics.WeekdayRevenue {
	out := analytics.RevenueByWeekday(s.view(ctx, p))
	infrastructure.RecordAggregation(ctx, s.metrics, "revenue_by_weekday")
	return out
}

// RevenueByHour returns the hour-of-day view for the filtered view.
func (s *DashboardService) RevenueByHour(ctx context.Context, p filter.Params) []analytics.HourRevenue {
	out := analytics.RevenueByHour(s.view(ctx, p))
	infrastructure.RecordAggregation(ctx, s.metrics, "revenue_by_hour")
	return out
}

// RevenueByDay returns the daily trend for the filtered view.
func (s *DashboardService) RevenueByDay(ctx context.Context, p filter.Params) []analytics.DayRevenue {
	out := analytics.RevenueByDay(s.view(ctx, p))
	infrastructure.RecordAggregation(ctx, s.metrics, "revenue_by_day")
	return out
}

// FilterOptions returns the selectable countries and the dataset date bounds.
func (s *DashboardService) FilterOptions(ctx context.Context) FilterOptions {
	min, max := s.store.DateBounds()
	return FilterOptions{
		Countries: s.store.Countries(),
		MinDate:   min,
		MaxDate:   max,
	}
}

// ExportFilteredRows streams the filtered transaction view as CSV.
func (s *DashboardService) ExportFilteredRows(ctx context.Context, w io.Writer, p filter.Params) error {
	view := s.view(ctx, p)
	infrastructure.RecordExport(ctx, s.metrics, "filtered_rows")
	return s.csvExporter.ExportFilteredRows(w, view)
}

// ExportProducts streams the product ranking as CSV.
func (s *DashboardService) ExportProducts(ctx context.Context, w io.Writer, p filter.Params, topN int) error {
	products := analytics.TopProducts(s.view(ctx, p), s.clampTopN(topN))
	infrastructure.RecordExport(ctx, s.metrics, "products")
	return s.csvExporter.ExportProducts(w, products)
}

// ExportCustomers streams the customer ranking as CSV.
func (s *DashboardService) ExportCustomers(ctx context.Context, w io.Writer, p filter.Params, topN int) error {
	customers := analytics.TopCustomers(s.view(ctx, p), s.clampTopN(topN))
	infrastructure.RecordExport(ctx, s.metrics, "customers")
	return s.csvExporter.ExportCustomers(w, customers)
}

// ExportWorkbook streams an Excel workbook holding every aggregate view.
func (s *DashboardService) ExportWorkbook(ctx context.Context, w io.Writer, p filter.Params, topN int) error {
	view := s.view(ctx, p)
	n := s.clampTopN(topN)

	views := exporter.WorkbookViews{
		KPIs:      analytics.ComputeKPIs(view),
		Countries: analytics.RevenueByCountry(view, n),
		Products:  analytics.TopProducts(view, n),
		Customers: analytics.TopCustomers(view, n),
		Monthly:   analytics.RevenueByMonth(view),
		Weekday:   analytics.RevenueByWeekday(view),
		Hourly:    analytics.RevenueByHour(view),
		Daily:     analytics.RevenueByDay(view),
	}

	infrastructure.RecordExport(ctx, s.metrics, "workbook")
	return s.workbook.Build(w, views)
}

// RowCount reports the size of the loaded dataset.
func (s *DashboardService) RowCount() int {
	return s.store.Len()
}

// view applies the filter parameters against the full dataset.
func (s *DashboardService) view(ctx context.Context, p filter.Params) []store.Row {
	view := filter.Apply(s.store.Rows(), p)
	s.logger.DebugContext(ctx, "filtered view computed",
		slog.Int("total_rows", s.store.Len()),
		slog.Int("view_rows", len(view)),
		slog.String("country", p.Country),
		slog.Float64("min_amount", p.MinAmount))
	return view
}

// clampTopN applies the configured default and ceiling to a requested
// ranking size. Zero or negative requests fall back to the default.
func (s *DashboardService) clampTopN(topN int) int {
	if topN <= 0 {
		return s.dashboard.DefaultTopN
	}
	if s.dashboard.MaxTopN > 0 && topN > s.dashboard.MaxTopN {
		return s.dashboard.MaxTopN
	}
	return topN
}

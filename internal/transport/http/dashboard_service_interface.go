package http

import (
	"context"
	"io"

	"retailboard/internal/analytics"
	"retailboard/internal/filter"
	"retailboard/internal/services"
)

// DashboardServiceInterface defines the service contract consumed by the
// dashboard handler.
type DashboardServiceInterface interface {
	KPIs(ctx context.Context, p filter.Params) services.KPIView
	RevenueByCountry(ctx context.Context, p filter.Params, topN int) []analytics.CountryRevenue
	TopProducts(ctx context.Context, p filter.Params, topN int) []analytics.ProductRevenue
	TopCustomers(ctx context.Context, p filter.Params, topN int) []analytics.CustomerRevenue
	RevenueByMonth(ctx context.Context, p filter.Params) []analytics.MonthRevenue
	RevenueByWeekday(ctx context.Context, p filter.Params) []analytics.WeekdayRevenue
	RevenueByHour(ctx context.Context, p filter.Params) []analytics.HourRevenue
	RevenueByDay(ctx context.Context, p filter.Params) []analytics.DayRevenue
	FilterOptions(ctx context.Context) services.FilterOptions

	ExportFilteredRows(ctx context.Context, w io.Writer, p filter.Params) error
	ExportProducts(ctx context.Context, w io.Writer, p filter.Params, topN int) error
	ExportCustomers(ctx context.Context, w io.Writer, p filter.Params, topN int) error
	ExportWorkbook(ctx context.Context, w io.Writer, p filter.Params, topN int) error
}

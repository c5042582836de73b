package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"retailboard/internal/analytics"
)

// WorkbookViews bundles every aggregate view included in the Excel download.
type WorkbookViews struct {
	KPIs      analytics.KPIs
	Countries []analytics.CountryRevenue
	Products  []analytics.ProductRevenue
	Customers []analytics.CustomerRevenue
	Monthly   []analytics.MonthRevenue
	Weekday   []analytics.WeekdayRevenue
	Hourly    []analytics.HourRevenue
	Daily     []analytics.DayRevenue
}

// WorkbookBuilder assembles aggregate views into a multi-sheet Excel
// workbook.
type WorkbookBuilder struct{}

// NewWorkbookBuilder creates a new workbook builder.
func NewWorkbookBuilder() *WorkbookBuilder {
	return &WorkbookBuilder{}
}

// Build writes a workbook with one sheet per aggregate view to w.
func (b *WorkbookBuilder) Build(w io.Writer, views WorkbookViews) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "KPIs"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSheet(f, "KPIs", []string{"Metric", "Value"}, [][]any{
		{"Revenue", views.KPIs.Revenue},
		{"Transactions", views.KPIs.Transactions},
		{"Customers", views.KPIs.Customers},
		{"Avg Basket", views.KPIs.AvgBasket},
		{"Revenue per Customer", views.KPIs.RevenuePerCustomer},
	}); err != nil {
		return err
	}

	countryRows := make([][]any, 0, len(views.Countries))
	for _, c := range views.Countries {
		countryRows = append(countryRows, []any{c.Country, c.Revenue})
	}
	if err := addSheet(f, "Countries", []string{"Country", "Revenue"}, countryRows); err != nil {
		return err
	}

	productRows := make([][]any, 0, len(views.Products))
	for _, p := range views.Products {
		productRows = append(productRows, []any{p.StockCode, p.Description, p.Revenue, p.Quantity})
	}
	if err := addSheet(f, "Products", []string{"StockCode", "Description", "Revenue", "Quantity"}, productRows); err != nil {
		return err
	}

	customerRows := make([][]any, 0, len(views.Customers))
	for _, c := range views.Customers {
		customerRows = append(customerRows, []any{c.CustomerID, c.Revenue, c.Orders})
	}
	if err := addSheet(f, "Customers", []string{"CustomerID", "Revenue", "Orders"}, customerRows); err != nil {
		return err
	}

	monthRows := make([][]any, 0, len(views.Monthly))
	for _, m := range views.Monthly {
		monthRows = append(monthRows, []any{m.Period, m.Revenue})
	}
	if err := addSheet(f, "Monthly", []string{"Period", "Revenue"}, monthRows); err != nil {
		return err
	}

	weekdayRows := make([][]any, 0, len(views.Weekday))
	for _, d := range views.Weekday {
		weekdayRows = append(weekdayRows, []any{d.DayName, d.Revenue})
	}
	if err := addSheet(f, "Weekday", []string{"Day", "Revenue"}, weekdayRows); err != nil {
		return err
	}

	hourRows := make([][]any, 0, len(views.Hourly))
	for _, h := range views.Hourly {
		hourRows = append(hourRows, []any{h.Hour, h.Revenue})
	}
	if err := addSheet(f, "Hourly", []string{"Hour", "Revenue"}, hourRows); err != nil {
		return err
	}

	dailyRows := make([][]any, 0, len(views.Daily))
	for _, d := range views.Daily {
		dailyRows = append(dailyRows, []any{d.Date.Format("2006-01-02"), d.Revenue})
	}
	if err := addSheet(f, "Daily", []string{"Date", "Revenue"}, dailyRows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// addSheet creates a sheet and fills it with a header row plus data rows.
func addSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return writeSheet(f, name, headers, rows)
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers for %s: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %s: %w", i+2, name, err)
		}
		r := row
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, name, err)
		}
	}
	return nil
}

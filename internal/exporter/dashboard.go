package exporter

import (
	"fmt"
	"io"
	"strconv"

	"retailboard/internal/analytics"
	"retailboard/internal/store"
)

// RowHeaders is the column order for exported transaction rows. It matches
// the cleaned dataset layout so a download can be re-ingested directly.
var RowHeaders = []string{
	"InvoiceNo", "StockCode", "Description", "Quantity", "UnitPrice",
	"TotalPrice", "InvoiceDate", "Year", "Month", "Day", "DayOfWeek",
	"DayName", "Hour", "CustomerID", "Country",
}

// RowRecord serializes one transaction row in RowHeaders order.
func RowRecord(r store.Row) []string {
	customer := ""
	if r.CustomerID != nil {
		customer = strconv.FormatInt(*r.CustomerID, 10)
	}
	return []string{
		r.InvoiceNo,
		r.StockCode,
		r.Description,
		strconv.FormatInt(r.Quantity, 10),
		money(r.UnitPrice),
		money(r.TotalPrice),
		r.InvoiceDate.Format("2006-01-02 15:04:05"),
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Month),
		strconv.Itoa(r.Day),
		strconv.Itoa(r.DayOfWeek),
		r.DayName,
		strconv.Itoa(r.Hour),
		customer,
		r.Country,
	}
}

// DashboardExporter serializes dashboard views into downloadable CSV
// documents.
type DashboardExporter struct{}

// NewDashboardExporter creates a new dashboard exporter.
func NewDashboardExporter() *DashboardExporter {
	return &DashboardExporter{}
}

// ExportFilteredRows streams the filtered transaction view as CSV.
func (e *DashboardExporter) ExportFilteredRows(w io.Writer, rows []store.Row) error {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		records = append(records, RowRecord(rows[i]))
	}
	return WriteCSV(w, WriteOptions{
		Headers:   RowHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

// ExportProducts streams a product ranking as CSV.
func (e *DashboardExporter) ExportProducts(w io.Writer, products []analytics.ProductRevenue) error {
	records := make([][]string, 0, len(products))
	for _, p := range products {
		records = append(records, []string{
			p.StockCode,
			p.Description,
			money(p.Revenue),
			strconv.FormatInt(p.Quantity, 10),
		})
	}
	return WriteCSV(w, WriteOptions{
		Headers:   []string{"StockCode", "Description", "Revenue", "Quantity"},
		Records:   records,
		BOMPrefix: true,
	})
}

// ExportCustomers streams a customer ranking as CSV.
func (e *DashboardExporter) ExportCustomers(w io.Writer, customers []analytics.CustomerRevenue) error {
	records := make([][]string, 0, len(customers))
	for _, c := range customers {
		records = append(records, []string{
			strconv.FormatInt(c.CustomerID, 10),
			money(c.Revenue),
			strconv.Itoa(c.Orders),
		})
	}
	return WriteCSV(w, WriteOptions{
		Headers:   []string{"CustomerID", "Revenue", "Orders"},
		Records:   records,
		BOMPrefix: true,
	})
}

// money renders a monetary amount with two decimals for spreadsheet use.
func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

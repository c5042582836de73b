package store

import (
	"strings"
	"time"
)

// Row is one line item of an order. Multiple rows share an InvoiceNo; the
// invoice is the unit of "transaction" for counting and amount filtering.
// Time fields are derived from InvoiceDate at load and immutable afterward.
type Row struct {
	InvoiceNo   string    `json:"invoice_no" csv:"InvoiceNo"`
	StockCode   string    `json:"stock_code" csv:"StockCode"`
	Description string    `json:"description" csv:"Description"`
	Quantity    int64     `json:"quantity" csv:"Quantity"`
	UnitPrice   float64   `json:"unit_price" csv:"UnitPrice"`
	TotalPrice  float64   `json:"total_price" csv:"TotalPrice"`
	InvoiceDate time.Time `json:"invoice_date" csv:"InvoiceDate"`
	Year        int       `json:"year" csv:"Year"`
	Month       int       `json:"month" csv:"Month"`
	Day         int       `json:"day" csv:"Day"`
	DayOfWeek   int       `json:"day_of_week" csv:"DayOfWeek"` // 0=Monday .. 6=Sunday
	DayName     string    `json:"day_name" csv:"DayName"`
	Hour        int       `json:"hour" csv:"Hour"`
	CustomerID  *int64    `json:"customer_id,omitempty" csv:"CustomerID"` // nil for guest checkouts
	Country     string    `json:"country" csv:"Country"`
}

// HasCustomer reports whether the row belongs to an identified customer.
// Rows without one are valid transactions but excluded from customer-level
// aggregates.
func (r *Row) HasCustomer() bool {
	return r.CustomerID != nil
}

// Date returns the calendar date of the invoice (time-of-day dropped).
func (r *Row) Date() time.Time {
	y, m, d := r.InvoiceDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.InvoiceDate.Location())
}

// Derive fills TotalPrice and the time fields from Quantity, UnitPrice and
// InvoiceDate. Called once at load; DayOfWeek is Monday-based to match the
// dashboard's week ordering.
func (r *Row) Derive() {
	r.TotalPrice = float64(r.Quantity) * r.UnitPrice

	r.Year = r.InvoiceDate.Year()
	r.Month = int(r.InvoiceDate.Month())
	r.Day = r.InvoiceDate.Day()
	r.DayOfWeek = (int(r.InvoiceDate.Weekday()) + 6) % 7
	r.DayName = r.InvoiceDate.Weekday().String()
	r.Hour = r.InvoiceDate.Hour()
}

// Clean applies the dataset cleaning rules in place: trims and uppercases the
// free-text columns. Returns false when the row must be dropped (non-positive
// quantity or unit price).
func (r *Row) Clean() bool {
	if r.Quantity <= 0 || r.UnitPrice <= 0 {
		return false
	}

	r.Description = strings.ToUpper(strings.TrimSpace(r.Description))
	r.Country = strings.ToUpper(strings.TrimSpace(r.Country))
	r.InvoiceNo = strings.TrimSpace(r.InvoiceNo)
	r.StockCode = strings.TrimSpace(r.StockCode)
	return true
}

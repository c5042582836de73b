// Package analytics provides the dashboard's aggregate views: pure,
// deterministic reductions over a filtered set of transaction rows. Every
// function recomputes from scratch; nothing is cached between calls.
package analytics

import "time"

// KPIs are the scalar summary metrics shown at the top of the dashboard.
// Ratios are zero-guarded: an empty view yields all zeroes, never an error.
type KPIs struct {
	Revenue            float64 `json:"revenue"`
	Transactions       int     `json:"transactions"` // distinct invoices
	Customers          int     `json:"customers"`    // distinct identified customers
	AvgBasket          float64 `json:"avg_basket"`
	RevenuePerCustomer float64 `json:"revenue_per_customer"`
}

// CountryRevenue is one row of the revenue-by-country ranking.
type CountryRevenue struct {
	Country string  `json:"country"`
	Revenue float64 `json:"revenue"`
}

// ProductRevenue is one row of the top-products ranking. Description is the
// first one seen for the stock code.
type ProductRevenue struct {
	StockCode   string  `json:"stock_code"`
	Description string  `json:"description"`
	Revenue     float64 `json:"revenue"`
	Quantity    int64   `json:"quantity"`
}

// CustomerRevenue is one row of the top-customers ranking. Orders counts
// distinct invoices.
type CustomerRevenue struct {
	CustomerID int64   `json:"customer_id"`
	Revenue    float64 `json:"revenue"`
	Orders     int     `json:"orders"`
}

// MonthRevenue is one chronological bucket of the monthly trend. Period is
// the "YYYY-MM" display label.
type MonthRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// WeekdayRevenue is one bucket of the day-of-week view. DayOfWeek is
// Monday-based (0..6). Days with no transactions are absent, not zero-filled.
type WeekdayRevenue struct {
	DayOfWeek int     `json:"day_of_week"`
	DayName   string  `json:"day_name"`
	Revenue   float64 `json:"revenue"`
}

// HourRevenue is one bucket of the hour-of-day view (0..23). Hours with no
// transactions are absent.
type HourRevenue struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

// DayRevenue is one calendar-day bucket of the daily trend.
type DayRevenue struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
}

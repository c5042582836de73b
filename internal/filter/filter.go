// Package filter narrows the record store down to the rows matching the
// dashboard's active filter parameters. Filters compose sequentially:
// country, then date range, then minimum invoice amount — the amount filter
// evaluates per-invoice totals over the already-narrowed set.
package filter

import (
	"time"

	"retailboard/internal/store"
)

// AllCountries is the sentinel country value meaning "no country filter".
const AllCountries = "All"

// Params holds one interaction's filter inputs. A fresh Params value arrives
// with every request; the engine itself keeps no state.
type Params struct {
	// Country is an exact match against Row.Country, or AllCountries.
	Country string
	// DateRange is an inclusive [start, end] calendar-date pair. Anything
	// other than exactly two endpoints makes the date filter a no-op (a
	// half-picked widget range must still render a dashboard).
	DateRange []time.Time
	// MinAmount retains only invoices whose total revenue meets the
	// threshold. Zero disables the filter.
	MinAmount float64
}

// Apply produces the filtered view for the given parameters. Pure: the input
// slice is never mutated. When every filter is a no-op the input slice is
// returned as-is.
func Apply(rows []store.Row, p Params) []store.Row {
	view := byCountry(rows, p.Country)
	view = byDateRange(view, p.DateRange)
	view = byMinInvoiceAmount(view, p.MinAmount)
	return view
}

// byCountry retains rows whose Country equals country exactly. No partial or
// fuzzy matching.
func byCountry(rows []store.Row, country string) []store.Row {
	if country == "" || country == AllCountries {
		return rows
	}

	out := make([]store.Row, 0, len(rows))
	for i := range rows {
		if rows[i].Country == country {
			out = append(out, rows[i])
		}
	}
	return out
}

// byDateRange retains rows whose invoice calendar date falls inside the
// inclusive range. Time-of-day is ignored on both sides.
func byDateRange(rows []store.Row, dateRange []time.Time) []store.Row {
	if len(dateRange) != 2 {
		return rows
	}

	start := truncateToDate(dateRange[0])
	end := truncateToDate(dateRange[1])

	out := make([]store.Row, 0, len(rows))
	for i := range rows {
		d := rows[i].Date()
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, rows[i])
	}
	return out
}

// byMinInvoiceAmount retains rows belonging to invoices whose total revenue,
// computed over the rows given (i.e. after the prior filters), meets the
// threshold. Eligibility is decided per invoice, never per line item.
func byMinInvoiceAmount(rows []store.Row, minAmount float64) []store.Row {
	if minAmount <= 0 {
		return rows
	}

	totals := make(map[string]float64)
	for i := range rows {
		totals[rows[i].InvoiceNo] += rows[i].TotalPrice
	}

	out := make([]store.Row, 0, len(rows))
	for i := range rows {
		if totals[rows[i].InvoiceNo] >= minAmount {
			out = append(out, rows[i])
		}
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

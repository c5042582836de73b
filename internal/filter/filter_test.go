package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailboard/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(invoice, country string, total float64, date time.Time, customer int64) store.Row {
	r := store.Row{
		InvoiceNo:   invoice,
		Country:     country,
		TotalPrice:  total,
		InvoiceDate: date,
		CustomerID:  &customer,
	}
	return r
}

func testRows() []store.Row {
	return []store.Row{
		row("A", "FRANCE", 40, day(2011, 3, 1).Add(9*time.Hour), 1),
		row("A", "FRANCE", 20, day(2011, 3, 1).Add(9*time.Hour), 1),
		row("B", "UNITED KINGDOM", 5, day(2011, 3, 2).Add(14*time.Hour), 2),
		row("C", "UNITED KINGDOM", 100, day(2011, 5, 10).Add(11*time.Hour), 3),
	}
}

func TestApply_CountryFilter(t *testing.T) {
	rows := testRows()

	tests := []struct {
		name    string
		country string
		want    int
	}{
		{"all sentinel is no-op", AllCountries, 4},
		{"empty is no-op", "", 4},
		{"exact match", "FRANCE", 2},
		{"no partial matching", "FRANC", 0},
		{"unknown country", "MARS", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(rows, Params{Country: tt.country})
			assert.Len(t, got, tt.want)
		})
	}
}

func TestApply_CountryFilterIdempotent(t *testing.T) {
	rows := testRows()

	once := Apply(rows, Params{Country: "FRANCE"})
	twice := Apply(once, Params{Country: "FRANCE"})

	assert.Equal(t, once, twice)
}

func TestApply_DateRange(t *testing.T) {
	rows := testRows()

	got := Apply(rows, Params{DateRange: []time.Time{day(2011, 3, 1), day(2011, 3, 2)}})
	require.Len(t, got, 3)
	for _, r := range got {
		d := r.Date()
		assert.False(t, d.Before(day(2011, 3, 1)))
		assert.False(t, d.After(day(2011, 3, 2)))
	}

	// Inclusive on both ends: a single-day range keeps that day's rows
	got = Apply(rows, Params{DateRange: []time.Time{day(2011, 3, 2), day(2011, 3, 2)}})
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].InvoiceNo)

	// Time-of-day on the endpoints is ignored
	got = Apply(rows, Params{DateRange: []time.Time{
		day(2011, 3, 2).Add(23 * time.Hour),
		day(2011, 3, 2).Add(1 * time.Minute),
	}})
	assert.Len(t, got, 1)
}

func TestApply_MalformedDateRangeIsNoOp(t *testing.T) {
	rows := testRows()

	for _, dr := range [][]time.Time{nil, {day(2011, 3, 1)}, {day(2011, 3, 1), day(2011, 3, 2), day(2011, 3, 3)}} {
		got := Apply(rows, Params{DateRange: dr})
		assert.Len(t, got, len(rows))
	}
}

func TestApply_MinAmountOperatesPerInvoice(t *testing.T) {
	rows := testRows()

	// Invoice A totals 60, B totals 5, C totals 100
	got := Apply(rows, Params{MinAmount: 50})
	require.Len(t, got, 3)
	for _, r := range got {
		assert.NotEqual(t, "B", r.InvoiceNo)
	}

	// A line item below threshold stays when its invoice qualifies
	var small bool
	for _, r := range got {
		if r.InvoiceNo == "A" && r.TotalPrice == 20 {
			small = true
		}
	}
	assert.True(t, small, "the 20 line of invoice A must survive")

	// Zero threshold is a no-op
	assert.Len(t, Apply(rows, Params{MinAmount: 0}), 4)

	// Threshold above every invoice empties the view
	assert.Empty(t, Apply(rows, Params{MinAmount: 1000}))
}

func TestApply_MinAmountEvaluatedAfterPriorFilters(t *testing.T) {
	// Narrow by date so invoice A contributes only one line to the
	// threshold computation.
	rows := []store.Row{
		row("A", "FRANCE", 40, day(2011, 3, 1), 1),
		row("A", "FRANCE", 20, day(2011, 3, 2), 1),
	}

	// Over the full set invoice A totals 60 and would pass a threshold of
	// 50; restricted to March 1st it totals only 40 and must be dropped.
	got := Apply(rows, Params{
		DateRange: []time.Time{day(2011, 3, 1), day(2011, 3, 1)},
		MinAmount: 50,
	})
	assert.Empty(t, got)
}

func TestApply_ComposesAllFilters(t *testing.T) {
	rows := testRows()

	got := Apply(rows, Params{
		Country:   "UNITED KINGDOM",
		DateRange: []time.Time{day(2011, 1, 1), day(2011, 12, 31)},
		MinAmount: 50,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].InvoiceNo)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rows := testRows()
	before := make([]store.Row, len(rows))
	copy(before, rows)

	Apply(rows, Params{Country: "FRANCE", MinAmount: 10})

	assert.Equal(t, before, rows)
}

func TestApply_RowAndInvoiceTotalsAgree(t *testing.T) {
	rows := testRows()
	view := Apply(rows, Params{MinAmount: 50})

	var rowSum float64
	invoiceTotals := make(map[string]float64)
	for _, r := range view {
		rowSum += r.TotalPrice
		invoiceTotals[r.InvoiceNo] += r.TotalPrice
	}

	var invoiceSum float64
	for _, total := range invoiceTotals {
		invoiceSum += total
	}

	assert.InDelta(t, rowSum, invoiceSum, 1e-9)
}

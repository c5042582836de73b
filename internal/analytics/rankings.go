package analytics

import (
	"sort"

	"retailboard/internal/store"
)

// ComputeKPIs reduces the view to its scalar summary metrics. Guest rows
// (no customer id) count toward revenue and transactions but not customers.
func ComputeKPIs(rows []store.Row) KPIs {
	var k KPIs

	invoices := make(map[string]struct{})
	customers := make(map[int64]struct{})
	for i := range rows {
		k.Revenue += rows[i].TotalPrice
		invoices[rows[i].InvoiceNo] = struct{}{}
		if rows[i].CustomerID != nil {
			customers[*rows[i].CustomerID] = struct{}{}
		}
	}

	k.Transactions = len(invoices)
	k.Customers = len(customers)
	if k.Transactions > 0 {
		k.AvgBasket = k.Revenue / float64(k.Transactions)
	}
	if k.Customers > 0 {
		k.RevenuePerCustomer = k.Revenue / float64(k.Customers)
	}
	return k
}

// RevenueByCountry ranks countries by total revenue, descending. topN <= 0
// returns the full ranking. Ties preserve first-seen row order.
func RevenueByCountry(rows []store.Row, topN int) []CountryRevenue {
	totals := make(map[string]float64)
	var order []string
	for i := range rows {
		c := rows[i].Country
		if _, seen := totals[c]; !seen {
			order = append(order, c)
		}
		totals[c] += rows[i].TotalPrice
	}

	out := make([]CountryRevenue, 0, len(order))
	for _, c := range order {
		out = append(out, CountryRevenue{Country: c, Revenue: totals[c]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return truncate(out, topN)
}

// TopProducts ranks products by revenue, descending. Products are keyed by
// stock code; the description shown is the first one encountered, so variant
// spellings in the raw data do not split a product's total.
func TopProducts(rows []store.Row, topN int) []ProductRevenue {
	byCode := make(map[string]*ProductRevenue)
	var order []string
	for i := range rows {
		code := rows[i].StockCode
		p, seen := byCode[code]
		if !seen {
			p = &ProductRevenue{StockCode: code, Description: rows[i].Description}
			byCode[code] = p
			order = append(order, code)
		}
		p.Revenue += rows[i].TotalPrice
		p.Quantity += rows[i].Quantity
	}

	out := make([]ProductRevenue, 0, len(order))
	for _, code := range order {
		out = append(out, *byCode[code])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return truncate(out, topN)
}

// TopCustomers ranks identified customers by revenue, descending. Guest rows
// are excluded entirely. Orders counts distinct invoices per customer.
func TopCustomers(rows []store.Row, topN int) []CustomerRevenue {
	type acc struct {
		revenue  float64
		invoices map[string]struct{}
	}
	byID := make(map[int64]*acc)
	var order []int64
	for i := range rows {
		if rows[i].CustomerID == nil {
			continue
		}
		id := *rows[i].CustomerID
		a, seen := byID[id]
		if !seen {
			a = &acc{invoices: make(map[string]struct{})}
			byID[id] = a
			order = append(order, id)
		}
		a.revenue += rows[i].TotalPrice
		a.invoices[rows[i].InvoiceNo] = struct{}{}
	}

	out := make([]CustomerRevenue, 0, len(order))
	for _, id := range order {
		out = append(out, CustomerRevenue{
			CustomerID: id,
			Revenue:    byID[id].revenue,
			Orders:     len(byID[id].invoices),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return truncate(out, topN)
}

// truncate caps a ranking at n entries. n <= 0 means no cap; n beyond the
// slice length returns the whole slice.
func truncate[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}

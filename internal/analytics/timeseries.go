package analytics

import (
	"fmt"
	"sort"
	"time"

	"retailboard/internal/store"
)

// RevenueByMonth buckets revenue by calendar month, sorted chronologically.
// Months with no transactions in the view are absent from the result.
func RevenueByMonth(rows []store.Row) []MonthRevenue {
	type ym struct{ year, month int }
	totals := make(map[ym]float64)
	for i := range rows {
		totals[ym{rows[i].Year, rows[i].Month}] += rows[i].TotalPrice
	}

	out := make([]MonthRevenue, 0, len(totals))
	for k, revenue := range totals {
		out = append(out, MonthRevenue{
			Year:    k.year,
			Month:   k.month,
			Period:  fmt.Sprintf("%04d-%02d", k.year, k.month),
			Revenue: revenue,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// RevenueByWeekday buckets revenue by day of week, Monday first. Only days
// present in the view appear.
func RevenueByWeekday(rows []store.Row) []WeekdayRevenue {
	totals := make(map[int]float64)
	names := make(map[int]string)
	for i := range rows {
		totals[rows[i].DayOfWeek] += rows[i].TotalPrice
		names[rows[i].DayOfWeek] = rows[i].DayName
	}

	out := make([]WeekdayRevenue, 0, len(totals))
	for dow, revenue := range totals {
		out = append(out, WeekdayRevenue{DayOfWeek: dow, DayName: names[dow], Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DayOfWeek < out[j].DayOfWeek
	})
	return out
}

// RevenueByHour buckets revenue by hour of day, 0 through 23. Only hours
// present in the view appear.
func RevenueByHour(rows []store.Row) []HourRevenue {
	totals := make(map[int]float64)
	for i := range rows {
		totals[rows[i].Hour] += rows[i].TotalPrice
	}

	out := make([]HourRevenue, 0, len(totals))
	for hour, revenue := range totals {
		out = append(out, HourRevenue{Hour: hour, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Hour < out[j].Hour
	})
	return out
}

// RevenueByDay buckets revenue by calendar day, sorted chronologically.
func RevenueByDay(rows []store.Row) []DayRevenue {
	totals := make(map[time.Time]float64)
	for i := range rows {
		totals[rows[i].Date()] += rows[i].TotalPrice
	}

	out := make([]DayRevenue, 0, len(totals))
	for day, revenue := range totals {
		out = append(out, DayRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

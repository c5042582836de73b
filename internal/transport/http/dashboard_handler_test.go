package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailboard/internal/config"
	apierrors "retailboard/internal/errors"
	"retailboard/internal/services"
	"retailboard/internal/store"
)

func testRow(invoice, code, country string, qty int64, price float64, at time.Time, customer int64) store.Row {
	r := store.Row{
		InvoiceNo:   invoice,
		StockCode:   code,
		Description: "ITEM " + code,
		Country:     country,
		Quantity:    qty,
		UnitPrice:   price,
		InvoiceDate: at,
	}
	if customer > 0 {
		r.CustomerID = &customer
	}
	r.Derive()
	return r
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	rows := []store.Row{
		testRow("1001", "A1", "UNITED KINGDOM", 10, 5, time.Date(2011, 1, 10, 9, 0, 0, 0, time.UTC), 100),
		testRow("1002", "A1", "FRANCE", 4, 5, time.Date(2011, 2, 14, 14, 0, 0, 0, time.UTC), 200),
		testRow("1003", "C3", "UNITED KINGDOM", 1, 30, time.Date(2011, 2, 15, 14, 0, 0, 0, time.UTC), 100),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewDashboardService(store.New(rows), config.DashboardConfig{
		DefaultTopN: 10,
		MaxTopN:     50,
	}, logger, nil)

	handler := NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger))

	r := chi.NewRouter()
	r.Mount("/api", handler.Routes())
	return r
}

func doRequest(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetKPIs(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/kpis")
	require.Equal(t, http.StatusOK, rec.Code)

	var kpis services.KPIView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kpis))
	assert.InDelta(t, 100, kpis.Revenue, 1e-9)
	assert.Equal(t, 3, kpis.Transactions)
	assert.Equal(t, "£100", kpis.RevenueDisplay)
}

func TestGetKPIs_WithFilters(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/kpis?country=FRANCE&from=2011-01-01&to=2011-12-31")
	require.Equal(t, http.StatusOK, rec.Code)

	var kpis services.KPIView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kpis))
	assert.InDelta(t, 20, kpis.Revenue, 1e-9)
	assert.Equal(t, 1, kpis.Transactions)
}

func TestGetKPIs_FilterMatchingNothing(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/kpis?country=MARS")
	require.Equal(t, http.StatusOK, rec.Code)

	var kpis services.KPIView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kpis))
	assert.Zero(t, kpis.Revenue)
	assert.Zero(t, kpis.Transactions)
	assert.Zero(t, kpis.AvgBasket)
}

func TestQueryValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{"malformed from date", "/api/kpis?from=not-a-date&to=2011-12-31"},
		{"from without to", "/api/kpis?from=2011-01-01"},
		{"to before from", "/api/kpis?from=2011-12-31&to=2011-01-01"},
		{"negative min amount", "/api/kpis?min_amount=-5"},
		{"non-numeric min amount", "/api/kpis?min_amount=abc"},
		{"zero top n", "/api/products/top?top_n=0"},
		{"non-numeric top n", "/api/products/top?top_n=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
		})
	}
}

func TestGetCountries(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/countries")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts services.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"FRANCE", "UNITED KINGDOM"}, opts.Countries)
	assert.Equal(t, 2011, opts.MinDate.Year())
}

func TestGetRevenueByCountry(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/revenue/countries")
	require.Equal(t, http.StatusOK, rec.Code)

	var ranking []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranking))
	require.Len(t, ranking, 2)
	assert.Equal(t, "UNITED KINGDOM", ranking[0]["country"])
}

func TestGetTopProducts_TopN(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/products/top?top_n=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var ranking []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranking))
	require.Len(t, ranking, 1)
	assert.Equal(t, "A1", ranking[0]["stock_code"])
}

func TestGetRevenueByMonth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/revenue/monthly")
	require.Equal(t, http.StatusOK, rec.Code)

	var months []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &months))
	require.Len(t, months, 2)
	assert.Equal(t, "2011-01", months[0]["period"])
}

func TestGetRevenueByWeekday(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/revenue/weekday")
	require.Equal(t, http.StatusOK, rec.Code)

	var days []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	require.NotEmpty(t, days)
	assert.Equal(t, "Monday", days[0]["day_name"])
}

func TestExportFiltered(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/export/filtered?country=FRANCE")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_data.csv")

	body := rec.Body.String()
	assert.Contains(t, body, "1002")
	assert.NotContains(t, body, "1001")
}

func TestExportWorkbook(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/export/workbook")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dashboard.xlsx")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestHealthHandler(t *testing.T) {
	rows := []store.Row{testRow("1", "A", "FRANCE", 1, 1, time.Date(2011, 1, 1, 9, 0, 0, 0, time.UTC), 1)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewHealthHandler(services.NewHealthService(store.New(rows), "v1.0.0"), logger)

	r := chi.NewRouter()
	r.Mount("/api/health", handler.Routes())

	rec := doRequest(t, r, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, 1, status.RowCount)
}

func TestHealthHandler_Degraded(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHealthHandler(services.NewHealthService(store.New(nil), "v1.0.0"), logger)

	r := chi.NewRouter()
	r.Mount("/api/health", handler.Routes())

	rec := doRequest(t, r, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailboard/internal/config"
	"retailboard/internal/infrastructure"
)

const testDataset = `InvoiceNo,StockCode,Description,Quantity,UnitPrice,InvoiceDate,CustomerID,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,2.55,2010-12-01 08:26:00,17850.0,UNITED KINGDOM
536366,22633,HAND WARMER UNION JACK,6,1.85,2010-12-01 08:28:00,,FRANCE
536367,21730,GLASS STAR FROSTED T-LIGHT HOLDER,2,4.25,2010-12-02 10:00:00,13047.0,UNITED KINGDOM
`

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	infrastructure.ResetLoggerForTesting()

	dataFile := filepath.Join(t.TempDir(), "clean_data.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(testDataset), 0644))

	cfg := config.Default()
	cfg.Paths.DataFile = dataFile
	cfg.Paths.SampleFile = ""
	cfg.Logging.Output = "stdout"
	cfg.Logging.Level = "error"

	application, err := NewApplicationWithConfig(cfg)
	require.NoError(t, err)
	return application
}

func TestNewApplication_LoadsDataset(t *testing.T) {
	application := newTestApplication(t)

	assert.Equal(t, 3, application.Store.Len())
	assert.NotNil(t, application.DashboardService)
	assert.NotNil(t, application.HealthService)
	assert.NotNil(t, application.Server)
}

func TestNewApplication_FailsWithoutDataset(t *testing.T) {
	infrastructure.ResetLoggerForTesting()

	cfg := config.Default()
	cfg.Paths.DataFile = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Paths.SampleFile = ""
	cfg.Logging.Level = "error"

	_, err := NewApplicationWithConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

func TestRouter_Endpoints(t *testing.T) {
	application := newTestApplication(t)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/kpis", http.StatusOK},
		{"/api/countries", http.StatusOK},
		{"/api/revenue/countries", http.StatusOK},
		{"/api/revenue/monthly", http.StatusOK},
		{"/api/revenue/weekday", http.StatusOK},
		{"/api/revenue/hourly", http.StatusOK},
		{"/api/revenue/daily", http.StatusOK},
		{"/api/products/top", http.StatusOK},
		{"/api/customers/top", http.StatusOK},
		{"/api/export/filtered", http.StatusOK},
		{"/api/export/products", http.StatusOK},
		{"/api/export/customers", http.StatusOK},
		{"/api/export/workbook", http.StatusOK},
		{"/api/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			application.Router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	application := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_SecurityHeaders(t *testing.T) {
	application := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

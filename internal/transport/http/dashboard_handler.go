package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "retailboard/internal/errors"
	"retailboard/internal/filter"
)

// queryDateLayout is the wire format for the from/to filter parameters.
const queryDateLayout = "2006-01-02"

// DashboardHandler handles dashboard aggregate and export requests.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/kpis", h.GetKPIs)
		r.Get("/countries", h.GetCountries)
		r.Get("/revenue/countries", h.GetRevenueByCountry)
		r.Get("/revenue/monthly", h.GetRevenueByMonth)
		r.Get("/revenue/weekday", h.GetRevenueByWeekday)
		r.Get("/revenue/hourly", h.GetRevenueByHour)
		r.Get("/revenue/daily", h.GetRevenueByDay)
		r.Get("/products/top", h.GetTopProducts)
		r.Get("/customers/top", h.GetTopCustomers)
	})

	r.Route("/export", func(r chi.Router) {
		r.Get("/filtered", h.ExportFiltered)
		r.Get("/products", h.ExportProducts)
		r.Get("/customers", h.ExportCustomers)
		r.Get("/workbook", h.ExportWorkbook)
	})

	return r
}

// dashboardQuery holds the raw filter inputs taken from the query string.
type dashboardQuery struct {
	Country   string `validate:"omitempty,max=64"`
	From      string `validate:"omitempty,datetime=2006-01-02"`
	To        string `validate:"omitempty,datetime=2006-01-02"`
	MinAmount string `validate:"omitempty,numeric"`
	TopN      string `validate:"omitempty,number"`
}

// parseQuery validates the query string and converts it into filter
// parameters plus the requested ranking size.
func (h *DashboardHandler) parseQuery(r *http.Request) (filter.Params, int, error) {
	q := dashboardQuery{
		Country:   r.URL.Query().Get("country"),
		From:      r.URL.Query().Get("from"),
		To:        r.URL.Query().Get("to"),
		MinAmount: r.URL.Query().Get("min_amount"),
		TopN:      r.URL.Query().Get("top_n"),
	}

	if err := h.validate.Struct(q); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			field := errs[0].Field()
			return filter.Params{}, 0, apierrors.ErrValidation(field,
				fmt.Sprintf("invalid value for %s", field))
		}
		return filter.Params{}, 0, apierrors.InvalidRequestWithError(err)
	}

	p := filter.Params{Country: q.Country}

	// Both endpoints or neither: a half-specified range is a validation
	// error at the API boundary, unlike the UI widget's transient state.
	switch {
	case q.From != "" && q.To != "":
		from, _ := time.Parse(queryDateLayout, q.From)
		to, _ := time.Parse(queryDateLayout, q.To)
		if to.Before(from) {
			return filter.Params{}, 0, apierrors.ErrValidation("to", "to must not precede from")
		}
		p.DateRange = []time.Time{from, to}
	case q.From != "" || q.To != "":
		return filter.Params{}, 0, apierrors.ErrValidation("from", "from and to must be provided together")
	}

	if q.MinAmount != "" {
		minAmount, err := strconv.ParseFloat(q.MinAmount, 64)
		if err != nil || minAmount < 0 {
			return filter.Params{}, 0, apierrors.ErrValidation("min_amount", "min_amount must be a non-negative number")
		}
		p.MinAmount = minAmount
	}

	topN := 0
	if q.TopN != "" {
		n, err := strconv.Atoi(q.TopN)
		if err != nil || n < 1 {
			return filter.Params{}, 0, apierrors.ErrValidation("top_n", "top_n must be a positive integer")
		}
		topN = n
	}

	return p, topN, nil
}

// GetKPIs handles GET /api/kpis
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.KPIs(r.Context(), p))
}

// GetCountries handles GET /api/countries
func (h *DashboardHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.FilterOptions(r.Context()))
}

// GetRevenueByCountry handles GET /api/revenue/countries
func (h *DashboardHandler) GetRevenueByCountry(w http.ResponseWriter, r *http.Request) {
	p, topN, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.RevenueByCountry(r.Context(), p, topN))
}

// GetTopProducts handles GET /api/products/top
func (h *DashboardHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	p, topN, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.TopProducts(r.Context(), p, topN))
}

// GetTopCustomers handles GET /api/customers/top
func (h *DashboardHandler) GetTopCustomers(w http.ResponseWriter, r *http.Request) {
	p, topN, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.TopCustomers(r.Context(), p, topN))
}

// GetRevenueByMonth handles GET /api/revenue/monthly
func (h *DashboardHandler) GetRevenueByMonth(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.RevenueByMonth(r.Context(), p))
}

// GetRevenueByWeekday handles GET /api/revenue/weekday
func (h *DashboardHandler) GetRevenueByWeekday(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.RevenueByWeekday(r.Context(), p))
}

// GetRevenueByHour handles GET /api/revenue/hourly
func (h *DashboardHandler) GetRevenueByHour(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.RevenueByHour(r.Context(), p))
}

// GetRevenueByDay handles GET /api/revenue/daily
func (h *DashboardHandler) GetRevenueByDay(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.RevenueByDay(r.Context(), p))
}

// ExportFiltered handles GET /api/export/filtered
func (h *DashboardHandler) ExportFiltered(w http.ResponseWriter, r *http.Request) {
	p, _, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	setDownloadHeaders(w, "filtered_data.csv", "text/csv; charset=utf-8")
	if err := h.service.ExportFilteredRows(r.Context(), w, p); err != nil {
		h.logger.ErrorContext(r.Context(), "filtered rows export failed", slog.String("error", err.Error()))
	}
}

// ExportProducts handles GET /api/export/products
func (h *DashboardHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	p, topN, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	setDownloadHeaders(w, "top_products.csv", "text/csv; charset=utf-8")
	if err := h.service.ExportProducts(r.Context(), w, p, topN); err != nil {
		h.logger.ErrorContext(r.Context(), "products export failed", slog.String("error", err.Error()))
	}
}

// ExportCustomers handles GET /api/export/customers
func (h *DashboardHandler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	p, topN, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	setDownloadHeaders(w, "top_customers.csv", "text/csv; charset=utf-8")
	if err := h.service.ExportCustomers(r.Context(), w, p, topN); err != nil {
		h.logger.ErrorContext(r.Context(), "customers export failed", slog.String("error", err.Error()))
	}
}

// ExportWorkbook handles GET /api/export/workbook
func (h *DashboardHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	p, topN, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	setDownloadHeaders(w, "dashboard.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.service.ExportWorkbook(r.Context(), w, p, topN); err != nil {
		h.logger.ErrorContext(r.Context(), "workbook export failed", slog.String("error", err.Error()))
	}
}

func setDownloadHeaders(w http.ResponseWriter, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

package store

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"retailboard/internal/errors"
)

// ErrNoDataSource is returned when neither the primary nor the fallback
// dataset file exists. Fatal at startup: no partial dashboard is served.
var ErrNoDataSource = stderrors.New("no transaction data source available")

// dateLayouts are tried in order when parsing InvoiceDate values. The raw
// Online Retail export uses "M/D/YYYY H:MM"; cleaned files carry ISO dates.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006 15:04",
	"2006-01-02",
}

// Load reads the cleaned transaction dataset into an immutable record store.
// The primary path is tried first, then the fallback sample (cloud deployments
// ship only the sample). Rows failing the cleaning invariants are dropped and
// counted, matching the upstream preprocessing rules.
func Load(ctx context.Context, logger *slog.Logger, primary, fallback string) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path, err := pickSource(primary, fallback)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "loading transaction dataset",
		slog.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open dataset", err).WithContext("path", path)
	}
	defer file.Close()

	rows, skipped, err := readRows(file)
	if err != nil {
		return nil, errors.NewParsingError("failed to parse dataset", err).WithContext("path", path)
	}

	logger.InfoContext(ctx, "transaction dataset loaded",
		slog.String("path", path),
		slog.Int("row_count", len(rows)),
		slog.Int("skipped_rows", skipped))

	return New(rows), nil
}

// pickSource returns the first existing path, or ErrNoDataSource wrapped in a
// storage error when neither file is present.
func pickSource(primary, fallback string) (string, error) {
	for _, path := range []string{primary, fallback} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.NewStorageError(
		fmt.Sprintf("dataset not found at %q or %q", primary, fallback),
		ErrNoDataSource,
	)
}

// readRows parses the CSV stream. Columns are located by header name so the
// loader accepts both the raw export and the cleaned file with derived
// columns; derived fields are always recomputed from InvoiceDate.
func readRows(r io.Reader) ([]Row, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{"InvoiceNo", "StockCode", "Quantity", "UnitPrice", "InvoiceDate", "Country"} {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []Row
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read record: %w", err)
		}

		row, ok := parseRow(record, cols)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// parseRow converts one CSV record into a cleaned Row. Returns false for rows
// that fail parsing or the cleaning invariants.
func parseRow(record []string, cols map[string]int) (Row, bool) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	quantity, err := strconv.ParseInt(field("Quantity"), 10, 64)
	if err != nil {
		return Row{}, false
	}

	unitPrice, err := strconv.ParseFloat(field("UnitPrice"), 64)
	if err != nil {
		return Row{}, false
	}

	invoiceDate, ok := parseDate(field("InvoiceDate"))
	if !ok {
		return Row{}, false
	}

	row := Row{
		InvoiceNo:   field("InvoiceNo"),
		StockCode:   field("StockCode"),
		Description: field("Description"),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		InvoiceDate: invoiceDate,
		CustomerID:  parseCustomerID(field("CustomerID")),
		Country:     field("Country"),
	}

	if !row.Clean() {
		return Row{}, false
	}
	row.Derive()

	return row, true
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseCustomerID handles the empty value for guest checkouts and the ".0"
// suffix that float-typed exports attach to the identifier.
func parseCustomerID(value string) *int64 {
	if value == "" {
		return nil
	}
	value = strings.TrimSuffix(value, ".0")
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

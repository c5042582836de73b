// Package exporter provides CSV and Excel export functionality for the
// dashboard.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// DashboardExporter: Serializes the filtered transaction view and the
// ranking tables into downloadable CSV documents.
//
// WorkbookBuilder: Assembles every aggregate view into a multi-sheet Excel
// workbook.
package exporter

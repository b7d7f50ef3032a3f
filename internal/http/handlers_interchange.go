package http

import (
	"fmt"
	"log/slog"
	"net/http"
)

func (s *Server) handleImportGoogle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectErr(w, r, "Invalid form submission")
		return
	}

	csvURL := sanitizeInput(r.Form.Get("csv_url"))
	if csvURL == "" {
		redirectErr(w, r, "CSV URL is required")
		return
	}

	stats, err := s.exchange.ImportFromURL(r.Context(), csvURL)
	if err != nil {
		slog.ErrorContext(r.Context(), "Import failed", "error", err, "url", csvURL)
		redirectErr(w, r, errorMessage(err))
		return
	}

	redirectOK(w, r, fmt.Sprintf("Import complete: %d projects, %d expenses", stats.Projects, stats.Expenses))
}

func (s *Server) handleExportGoogle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectErr(w, r, "Invalid form submission")
		return
	}

	scriptURL := sanitizeInput(r.Form.Get("apps_script_url"))
	if scriptURL == "" {
		redirectErr(w, r, "Apps Script URL is required")
		return
	}

	n, err := s.exchange.ExportToURL(r.Context(), scriptURL)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err, "url", scriptURL)
		redirectErr(w, r, errorMessage(err))
		return
	}

	redirectOK(w, r, fmt.Sprintf("Export complete: %d rows sent", n))
}

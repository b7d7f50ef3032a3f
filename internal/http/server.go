// Package http serves the budget tracker web UI and its CSV/JSON interchange
// endpoints.
package http

import (
	"context"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"budgetapp/internal/core"
	"budgetapp/internal/interchange"
	appweb "budgetapp/web"
)

// Ledger is the store surface the handlers consume.
type Ledger interface {
	CreateProject(ctx context.Context, p core.NewProject) (int64, error)
	CreateExpense(ctx context.Context, e core.NewExpense) (int64, error)
	ListProjects(ctx context.Context) ([]core.ProjectSummary, error)
	GetProject(ctx context.Context, id int64) (core.ProjectSummary, error)
	ListExpenses(ctx context.Context, projectID int64) ([]core.Expense, error)
}

// Interchange runs the spreadsheet import/export flows.
type Interchange interface {
	ImportFromURL(ctx context.Context, url string) (interchange.Stats, error)
	ExportToURL(ctx context.Context, url string) (int, error)
	WriteCSV(ctx context.Context, w io.Writer) error
}

type Server struct {
	http.Server
	templates *template.Template
	ledger    Ledger
	exchange  Interchange
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, ledger Ledger, exchange Interchange) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:   ledger,
		exchange: exchange,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withRequestLog(s.handleIndex))
	mux.HandleFunc("/project", s.withRequestLog(s.handleProject))
	mux.HandleFunc("/export.csv", s.withRequestLog(s.handleExportCSV))
	mux.HandleFunc("/projects", s.withRequestLog(s.handleCreateProject))
	mux.HandleFunc("/expenses", s.withRequestLog(s.handleCreateExpense))
	mux.HandleFunc("/import-google", s.withRequestLog(s.handleImportGoogle))
	mux.HandleFunc("/export-google", s.withRequestLog(s.handleExportGoogle))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

// withRequestLog adds security headers and request logging to a handler.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		slog.InfoContext(r.Context(), "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(r.Context(), "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

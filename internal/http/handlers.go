package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"budgetapp/internal/core"
)

type projectView struct {
	ID        int64
	Name      string
	Budget    string
	Spent     string
	Remaining string
	Overspent bool
	CreatedAt string
}

type expenseView struct {
	Date        string
	Amount      string
	Description string
}

func summaryView(s core.ProjectSummary) projectView {
	return projectView{
		ID:        s.ID,
		Name:      s.Name,
		Budget:    s.PlannedBudget.String(),
		Spent:     s.Spent.String(),
		Remaining: s.Remaining.String(),
		Overspent: s.Remaining.IsNegative(),
		CreatedAt: s.CreatedAt,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	summaries, err := s.ledger.ListProjects(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List projects error", "error", err)
		http.Error(w, "failed to load projects", http.StatusInternalServerError)
		return
	}

	data := struct {
		Flash    *flash
		Today    string
		Projects []projectView
	}{
		Flash: flashFromQuery(r),
		Today: today(),
	}
	for _, sum := range summaries {
		data.Projects = append(data.Projects, summaryView(sum))
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	summary, err := s.ledger.GetProject(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Get project error", "error", err, "id", id)
		http.Error(w, "failed to load project", http.StatusInternalServerError)
		return
	}

	expenses, err := s.ledger.ListExpenses(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err, "id", id)
		http.Error(w, "failed to load expenses", http.StatusInternalServerError)
		return
	}

	data := struct {
		Project  projectView
		Today    string
		Expenses []expenseView
	}{
		Project: summaryView(summary),
		Today:   today(),
	}
	for _, e := range expenses {
		data.Expenses = append(data.Expenses, expenseView{Date: e.Date, Amount: e.Amount.String(), Description: e.Description})
	}

	if err := s.templates.ExecuteTemplate(w, "project.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Project template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=budget-export.csv")

	if err := s.exchange.WriteCSV(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
		// Headers are already out; the truncated body is the best we can do.
	}
}

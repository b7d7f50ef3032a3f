package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"budgetapp/internal/core"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectErr(w, r, "Invalid form submission")
		return
	}

	budget, err := core.ParseAmount(r.Form.Get("planned_budget"))
	if err != nil {
		redirectErr(w, r, errorMessage(err))
		return
	}

	createdAt := sanitizeInput(r.Form.Get("created_at"))
	if createdAt == "" {
		createdAt = today()
	}

	p := core.NewProject{
		Name:          sanitizeInput(r.Form.Get("name")),
		PlannedBudget: budget,
		CreatedAt:     createdAt,
	}
	if _, err := s.ledger.CreateProject(r.Context(), p); err != nil {
		slog.WarnContext(r.Context(), "Project create rejected", "error", err, "name", p.Name)
		redirectErr(w, r, errorMessage(err))
		return
	}

	redirectOK(w, r, "Project added")
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectErr(w, r, "Invalid form submission")
		return
	}

	projectID, err := strconv.ParseInt(r.Form.Get("project_id"), 10, 64)
	if err != nil {
		redirectErr(w, r, "Project not found")
		return
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		redirectErr(w, r, errorMessage(err))
		return
	}

	date := sanitizeInput(r.Form.Get("expense_date"))
	if date == "" {
		date = today()
	}

	e := core.NewExpense{
		ProjectID:   projectID,
		Amount:      amount,
		Description: sanitizeInput(r.Form.Get("description")),
		Date:        date,
	}
	if _, err := s.ledger.CreateExpense(r.Context(), e); err != nil {
		slog.WarnContext(r.Context(), "Expense create rejected", "error", err, "project_id", projectID)
		redirectErr(w, r, errorMessage(err))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/project?id=%d", projectID), http.StatusSeeOther)
}

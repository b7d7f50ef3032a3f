package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budgetapp/internal/core"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func mustAmount(t *testing.T, s string) core.Money {
	t.Helper()
	m, err := core.ParseAmount(s)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}
	return m
}

func TestCreateProjectDuplicateName(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	p := core.NewProject{Name: "Roof", PlannedBudget: mustAmount(t, "1000"), CreatedAt: "2024-01-01"}
	id, err := l.CreateProject(ctx, p)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	if _, err := l.CreateProject(ctx, p); !errors.Is(err, core.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// The first registration is unaffected.
	got, err := l.GetProject(ctx, id)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.Name != "Roof" || got.PlannedBudget.Cents != 100000 {
		t.Fatalf("unexpected project after duplicate attempt: %+v", got)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	if _, err := l.CreateProject(ctx, core.NewProject{Name: "", PlannedBudget: mustAmount(t, "10"), CreatedAt: "2024-01-01"}); !errors.Is(err, core.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if _, err := l.CreateProject(ctx, core.NewProject{Name: "X", PlannedBudget: core.Money{Cents: -100}, CreatedAt: "2024-01-01"}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateExpenseUnknownProject(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	e := core.NewExpense{ProjectID: 42, Amount: mustAmount(t, "10"), Description: "x", Date: "2024-01-01"}
	if _, err := l.CreateExpense(ctx, e); !errors.Is(err, core.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestAggregates(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	id, err := l.CreateProject(ctx, core.NewProject{Name: "Roof", PlannedBudget: mustAmount(t, "1000"), CreatedAt: "2024-01-01"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	// Zero expenses: spent = 0, remaining = planned budget.
	s, err := l.GetProject(ctx, id)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if s.Spent.Cents != 0 || s.Remaining.Cents != 100000 {
		t.Fatalf("empty project aggregates: spent=%d remaining=%d", s.Spent.Cents, s.Remaining.Cents)
	}

	for _, amount := range []string{"150.5", "49.50", "1000"} {
		e := core.NewExpense{ProjectID: id, Amount: mustAmount(t, amount), Description: "work", Date: "2024-01-02"}
		if _, err := l.CreateExpense(ctx, e); err != nil {
			t.Fatalf("create expense %s: %v", amount, err)
		}
	}

	s, err = l.GetProject(ctx, id)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if s.Spent.String() != "1200.00" {
		t.Fatalf("spent = %s", s.Spent)
	}
	// Overspend is representable, not rejected.
	if s.Remaining.String() != "-200.00" {
		t.Fatalf("remaining = %s", s.Remaining)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	l := openTestLedger(t)
	if _, err := l.GetProject(context.Background(), 999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListProjectsOrdering(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	mk := func(name, created string) int64 {
		t.Helper()
		id, err := l.CreateProject(ctx, core.NewProject{Name: name, PlannedBudget: mustAmount(t, "10"), CreatedAt: created})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		return id
	}
	oldID := mk("Old", "2023-05-01")
	newA := mk("NewA", "2024-02-01")
	newB := mk("NewB", "2024-02-01")

	list, err := l.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(list))
	}
	// created_at descending, ties broken by most-recently-created first.
	want := []int64{newB, newA, oldID}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d (%s)", i, id, list[i].ID, list[i].Name)
		}
	}
}

func TestListExpensesOrdering(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	id, err := l.CreateProject(ctx, core.NewProject{Name: "Roof", PlannedBudget: mustAmount(t, "1000"), CreatedAt: "2024-01-01"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	dates := []string{"2024-01-05", "2024-01-10", "2024-01-10", "2024-01-01"}
	var ids []int64
	for i, d := range dates {
		eid, err := l.CreateExpense(ctx, core.NewExpense{ProjectID: id, Amount: mustAmount(t, "1"), Description: "e", Date: d})
		if err != nil {
			t.Fatalf("create expense %d: %v", i, err)
		}
		ids = append(ids, eid)
	}

	got, err := l.ListExpenses(ctx, id)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	// expense_date descending, then id descending.
	want := []int64{ids[2], ids[1], ids[0], ids[3]}
	for i, eid := range want {
		if got[i].ID != eid {
			t.Fatalf("position %d: expected id %d, got %d", i, eid, got[i].ID)
		}
	}

	// Export order is insertion order.
	exp, err := l.ExpensesByProjectID(ctx, id)
	if err != nil {
		t.Fatalf("expenses by project: %v", err)
	}
	for i, eid := range ids {
		if exp[i].ID != eid {
			t.Fatalf("export position %d: expected id %d, got %d", i, eid, exp[i].ID)
		}
	}
}

func TestProjectIDByName(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	id, err := l.CreateProject(ctx, core.NewProject{Name: "Garden", PlannedBudget: mustAmount(t, "250"), CreatedAt: "2024-03-01"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	got, err := l.ProjectIDByName(ctx, "Garden")
	if err != nil || got != id {
		t.Fatalf("expected id %d, got %d (err=%v)", id, got, err)
	}
	if _, err := l.ProjectIDByName(ctx, "Nope"); !errors.Is(err, core.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	l.Close()

	// Reopening runs migrations again; ErrNoChange must not surface.
	l, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	l.Close()
}

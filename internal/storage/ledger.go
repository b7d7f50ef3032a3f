// Package storage persists projects and expenses in SQLite and answers the
// aggregate queries the ledger exposes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"budgetapp/internal/core"

	_ "modernc.org/sqlite"
)

// Ledger is the SQLite-backed store of projects and expenses. Every write is
// a self-contained transaction; project name uniqueness is enforced by the
// schema, not a pre-check.
type Ledger struct {
	db *sql.DB
}

func Open(dbPath string) (*Ledger, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// CreateProject inserts a new project and returns its id. A name collision
// surfaces as core.ErrDuplicateName; the constraint violation from the
// database is the authoritative rejection.
func (l *Ledger) CreateProject(ctx context.Context, p core.NewProject) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO projects(name, planned_budget_cents, created_at) VALUES(?, ?, ?)`,
		strings.TrimSpace(p.Name), p.PlannedBudget.Cents, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, core.ErrDuplicateName
		}
		return 0, fmt.Errorf("insert project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("project insert id: %w", err)
	}

	slog.InfoContext(ctx, "Project created",
		"id", id,
		"name", p.Name,
		"planned_budget_cents", p.PlannedBudget.Cents)

	return id, nil
}

// CreateExpense inserts an expense referencing an existing project. The
// existence check and the insert run in one transaction so no orphan row can
// appear between them.
func (l *Ledger) CreateExpense(ctx context.Context, e core.NewExpense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin expense tx: %w", err)
	}
	defer tx.Rollback()

	var projectID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM projects WHERE id = ?`, e.ProjectID).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, core.ErrProjectNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("check project: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO expenses(project_id, amount_cents, description, expense_date) VALUES(?, ?, ?, ?)`,
		e.ProjectID, e.Amount.Cents, e.Description, e.Date)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"id", id,
		"project_id", e.ProjectID,
		"amount_cents", e.Amount.Cents,
		"description", e.Description)

	return id, nil
}

// ListProjects returns every project with its aggregates, newest first
// (created_at descending, then id descending).
func (l *Ledger) ListProjects(ctx context.Context) ([]core.ProjectSummary, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.planned_budget_cents, p.created_at,
		       COALESCE(SUM(e.amount_cents), 0) AS spent_cents
		FROM projects p
		LEFT JOIN expenses e ON e.project_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []core.ProjectSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects rows: %w", err)
	}
	return out, nil
}

// GetProject returns one project with its aggregates, or core.ErrNotFound.
func (l *Ledger) GetProject(ctx context.Context, id int64) (core.ProjectSummary, error) {
	row := l.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.planned_budget_cents, p.created_at,
		       COALESCE(SUM(e.amount_cents), 0) AS spent_cents
		FROM projects p
		LEFT JOIN expenses e ON e.project_id = p.id
		WHERE p.id = ?
		GROUP BY p.id`, id)

	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ProjectSummary{}, core.ErrNotFound
	}
	if err != nil {
		return core.ProjectSummary{}, err
	}
	return s, nil
}

// ProjectIDByName resolves a project by its unique name, for the import path.
func (l *Ledger) ProjectIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := l.db.QueryRowContext(ctx, `SELECT id FROM projects WHERE name = ?`, strings.TrimSpace(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, core.ErrProjectNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find project by name: %w", err)
	}
	return id, nil
}

// ListExpenses returns the expenses of a project, newest first
// (expense_date descending, then id descending).
func (l *Ledger) ListExpenses(ctx context.Context, projectID int64) ([]core.Expense, error) {
	return l.queryExpenses(ctx, projectID, `ORDER BY expense_date DESC, id DESC`)
}

// ProjectsByID returns all projects in creation order, for the export path.
func (l *Ledger) ProjectsByID(ctx context.Context) ([]core.Project, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, planned_budget_cents, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export projects: %w", err)
	}
	defer rows.Close()

	var out []core.Project
	for rows.Next() {
		var p core.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.PlannedBudget.Cents, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export projects rows: %w", err)
	}
	return out, nil
}

// ExpensesByProjectID returns a project's expenses in insertion order, for
// the export path.
func (l *Ledger) ExpensesByProjectID(ctx context.Context, projectID int64) ([]core.Expense, error) {
	return l.queryExpenses(ctx, projectID, `ORDER BY id`)
}

func (l *Ledger) queryExpenses(ctx context.Context, projectID int64, order string) ([]core.Expense, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, project_id, amount_cents, description, expense_date FROM expenses WHERE project_id = ? `+order,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Amount.Cents, &e.Description, &e.Date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses rows: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(r rowScanner) (core.ProjectSummary, error) {
	var s core.ProjectSummary
	if err := r.Scan(&s.ID, &s.Name, &s.PlannedBudget.Cents, &s.CreatedAt, &s.Spent.Cents); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ProjectSummary{}, err
		}
		return core.ProjectSummary{}, fmt.Errorf("scan project summary: %w", err)
	}
	s.Remaining = s.PlannedBudget.Sub(s.Spent)
	return s, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Package interchange converts between the ledger's relational shape and the
// flat row format used for spreadsheet import and export.
package interchange

import (
	"context"

	"budgetapp/internal/core"
)

// Ports for the ledger operations the codec needs.
type (
	ProjectWriter interface {
		CreateProject(ctx context.Context, p core.NewProject) (int64, error)
	}

	ExpenseWriter interface {
		CreateExpense(ctx context.Context, e core.NewExpense) (int64, error)
	}

	ProjectFinder interface {
		// ProjectIDByName resolves a project by name, returning
		// core.ErrProjectNotFound when absent.
		ProjectIDByName(ctx context.Context, name string) (int64, error)
	}

	// SnapshotReader provides the export view: all projects in creation
	// order and each project's expenses in insertion order.
	SnapshotReader interface {
		ProjectsByID(ctx context.Context) ([]core.Project, error)
		ExpensesByProjectID(ctx context.Context, projectID int64) ([]core.Expense, error)
	}

	// ImportStore is the write surface the import algorithm runs against.
	ImportStore interface {
		ProjectWriter
		ExpenseWriter
		ProjectFinder
	}
)

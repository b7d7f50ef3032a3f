package interchange

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"budgetapp/internal/core"
)

// DefaultDescription is used for imported expenses whose description is blank.
const DefaultDescription = "Imported expense"

// Stats counts what an import actually created.
type Stats struct {
	Projects int
	Expenses int
}

// ImportRows replays interchange rows against the store. today fills in blank
// dates. Per row: an empty Project field skips the row; a non-empty Budget
// creates the project unless one with that name already exists, in which case
// the budget is silently ignored; a non-empty ExpenseAmount records an
// expense against the named project, or is silently skipped when no such
// project exists. A malformed amount aborts the whole import at that row;
// rows already written stay written (best effort, not atomic).
func ImportRows(ctx context.Context, store ImportStore, rows []Row, today string) (Stats, error) {
	var stats Stats

	for i, row := range rows {
		name := strings.TrimSpace(row.Project)
		if name == "" {
			continue
		}

		createdAt := strings.TrimSpace(row.CreatedAt)
		if createdAt == "" {
			createdAt = today
		}

		if budget := strings.TrimSpace(row.Budget); budget != "" {
			amount, err := core.ParseAmount(budget)
			if err != nil {
				return stats, fmt.Errorf("row %d: budget %q: %w", i+1, budget, err)
			}
			_, err = store.ProjectIDByName(ctx, name)
			switch {
			case errors.Is(err, core.ErrProjectNotFound):
				p := core.NewProject{Name: name, PlannedBudget: amount, CreatedAt: createdAt}
				if _, err := store.CreateProject(ctx, p); err != nil {
					return stats, fmt.Errorf("row %d: create project %q: %w", i+1, name, err)
				}
				stats.Projects++
			case err != nil:
				return stats, fmt.Errorf("row %d: find project %q: %w", i+1, name, err)
			default:
				// Project exists: the row's budget is ignored, no update.
			}
		}

		if amountText := strings.TrimSpace(row.ExpenseAmount); amountText != "" {
			amount, err := core.ParseAmount(amountText)
			if err != nil {
				return stats, fmt.Errorf("row %d: expense amount %q: %w", i+1, amountText, err)
			}
			projectID, err := store.ProjectIDByName(ctx, name)
			if errors.Is(err, core.ErrProjectNotFound) {
				// Expense for an unknown project is skipped, not an error.
				continue
			}
			if err != nil {
				return stats, fmt.Errorf("row %d: find project %q: %w", i+1, name, err)
			}

			description := strings.TrimSpace(row.ExpenseDescription)
			if description == "" {
				description = DefaultDescription
			}
			date := strings.TrimSpace(row.ExpenseDate)
			if date == "" {
				date = today
			}

			e := core.NewExpense{ProjectID: projectID, Amount: amount, Description: description, Date: date}
			if _, err := store.CreateExpense(ctx, e); err != nil {
				return stats, fmt.Errorf("row %d: create expense: %w", i+1, err)
			}
			stats.Expenses++
		}
	}

	return stats, nil
}

// ExportRows flattens the ledger into interchange rows: one project row per
// project in creation order, each followed by one row per expense in
// insertion order. The output is the exact shape ImportRows consumes.
func ExportRows(ctx context.Context, store SnapshotReader) ([]Row, error) {
	projects, err := store.ProjectsByID(ctx)
	if err != nil {
		return nil, fmt.Errorf("export projects: %w", err)
	}

	var rows []Row
	for _, p := range projects {
		rows = append(rows, Row{
			Project:   p.Name,
			Budget:    p.PlannedBudget.String(),
			CreatedAt: p.CreatedAt,
		})

		expenses, err := store.ExpensesByProjectID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("export expenses for %q: %w", p.Name, err)
		}
		for _, e := range expenses {
			rows = append(rows, Row{
				Project:            p.Name,
				ExpenseAmount:      e.Amount.String(),
				ExpenseDescription: e.Description,
				ExpenseDate:        e.Date,
			})
		}
	}

	return rows, nil
}

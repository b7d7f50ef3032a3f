package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingField    = errors.New("missing required field")
	ErrDuplicateName   = errors.New("project name already exists")
	ErrProjectNotFound = errors.New("project not found")
	ErrNotFound        = errors.New("not found")
	ErrInterchange     = errors.New("interchange failed")
)

type (
	// Project is a budgeted unit of work with a planned monetary ceiling.
	// Dates are stored as free-form text; the creation path only requires
	// them to be non-empty.
	Project struct {
		ID            int64
		Name          string
		PlannedBudget Money
		CreatedAt     string
	}

	// Expense is a monetary debit recorded against exactly one project.
	Expense struct {
		ID          int64
		ProjectID   int64
		Amount      Money
		Description string
		Date        string
	}

	// NewProject carries the input for project creation.
	NewProject struct {
		Name          string
		PlannedBudget Money
		CreatedAt     string
	}

	// NewExpense carries the input for expense creation.
	NewExpense struct {
		ProjectID   int64
		Amount      Money
		Description string
		Date        string
	}
)

func (p NewProject) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: project name", ErrMissingField)
	}
	if strings.TrimSpace(p.CreatedAt) == "" {
		return fmt.Errorf("%w: created date", ErrMissingField)
	}
	if p.PlannedBudget.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (e NewExpense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: expense description", ErrMissingField)
	}
	if strings.TrimSpace(e.Date) == "" {
		return fmt.Errorf("%w: expense date", ErrMissingField)
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

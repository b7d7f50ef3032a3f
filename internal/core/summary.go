package core

// ProjectSummary pairs a project with its expense aggregates. Spent is the
// sum of all expense amounts for the project (zero when none exist) and
// Remaining is PlannedBudget minus Spent, which may be negative.
type ProjectSummary struct {
	Project
	Spent     Money
	Remaining Money
}

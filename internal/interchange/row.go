package interchange

// Row is one record of the interchange table. A row declares a project
// (Project, Budget, CreatedAt), an expense (Project, ExpenseAmount,
// ExpenseDescription, ExpenseDate), or both at once; unused fields stay
// blank. The json tags are the key shape of the Apps Script payload.
type Row struct {
	Project            string `json:"Project"`
	Budget             string `json:"Budget"`
	CreatedAt          string `json:"CreatedAt"`
	ExpenseAmount      string `json:"ExpenseAmount"`
	ExpenseDescription string `json:"ExpenseDescription"`
	ExpenseDate        string `json:"ExpenseDate"`
}

// Header is the exact CSV column set of the interchange format.
var Header = []string{"Project", "Budget", "CreatedAt", "ExpenseAmount", "ExpenseDescription", "ExpenseDate"}

// Payload is the JSON body posted to an Apps Script export endpoint.
type Payload struct {
	Rows []Row `json:"rows"`
}

package models

// CategoryTotal is one slice of the expense breakdown. Field names follow
// what charting frontends expect for pie data.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardSummary is the current-month view for one user: totals per kind,
// their difference, and expenses grouped by category name.
type DashboardSummary struct {
	TotalIncome       float64         `json:"total_income"`
	TotalExpense      float64         `json:"total_expense"`
	Balance           float64         `json:"balance"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
}

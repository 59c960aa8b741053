package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Totals is the headline summary of a collection of transactions.
type Totals struct {
	Income   float64 `json:"totalIncome"`
	Expenses float64 `json:"totalExpenses"`
	Balance  float64 `json:"balance"`
}

var (
	incomeCategories  = []string{"Salary", "Freelance", "Business", "Investment", "Gift", "Other"}
	expenseCategories = []string{"Food", "Transport", "Shopping", "Bills", "Healthcare", "Entertainment", "Other"}
)

// Categories returns the curated category labels offered for t.
// The ledger itself accepts any non-empty label.
func Categories(t Type) []string {
	switch t {
	case Income:
		return append([]string(nil), incomeCategories...)
	case Expense:
		return append([]string(nil), expenseCategories...)
	default:
		return nil
	}
}

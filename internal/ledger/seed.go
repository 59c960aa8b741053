package ledger

import "budget/internal/core"

// demo is the fixed demonstration dataset installed into a fresh ledger,
// in stored order.
var demo = []struct {
	id       string
	typ      core.Type
	category string
	amount   float64
	date     [3]int
	notes    string
}{
	{"1", core.Expense, "Food", 45.67, [3]int{2025, 9, 30}, "Grocery shopping - weekly essentials"},
	{"2", core.Expense, "Transport", 12.5, [3]int{2025, 9, 30}, "Uber ride to work"},
	{"3", core.Income, "Freelance", 850, [3]int{2025, 9, 29}, "Web development project completion"},
	{"4", core.Expense, "Entertainment", 25.99, [3]int{2025, 9, 28}, "Netflix subscription"},
	{"5", core.Expense, "Food", 78.23, [3]int{2025, 9, 27}, "Dinner at Italian restaurant"},
	{"6", core.Expense, "Shopping", 149.99, [3]int{2025, 9, 26}, "New running shoes"},
	{"7", core.Income, "Salary", 3200, [3]int{2025, 9, 25}, "Monthly salary - Software Engineer"},
	{"8", core.Expense, "Bills", 89.5, [3]int{2025, 9, 24}, "Internet bill"},
	{"9", core.Expense, "Healthcare", 75, [3]int{2025, 9, 23}, "Doctor consultation"},
	{"10", core.Expense, "Transport", 65, [3]int{2025, 9, 22}, "Gas for car"},
	{"11", core.Expense, "Food", 52.34, [3]int{2025, 9, 20}, "Weekly grocery shopping"},
	{"12", core.Income, "Investment", 125.5, [3]int{2025, 9, 18}, "Dividend from stock portfolio"},
	{"13", core.Expense, "Entertainment", 42, [3]int{2025, 9, 15}, "Movie tickets and popcorn"},
	{"14", core.Expense, "Shopping", 89.99, [3]int{2025, 9, 14}, "New book and stationery"},
	{"15", core.Expense, "Bills", 125.75, [3]int{2025, 9, 10}, "Electricity bill"},
	{"16", core.Income, "Freelance", 1200, [3]int{2025, 8, 30}, "Mobile app development project"},
	{"17", core.Income, "Salary", 3200, [3]int{2025, 8, 25}, "Monthly salary - Software Engineer"},
	{"18", core.Expense, "Food", 234.56, [3]int{2025, 8, 28}, "Monthly grocery budget"},
	{"19", core.Expense, "Bills", 95, [3]int{2025, 8, 20}, "Phone bill"},
	{"20", core.Expense, "Healthcare", 150, [3]int{2025, 8, 18}, "Dental cleaning"},
	{"21", core.Expense, "Shopping", 299.99, [3]int{2025, 8, 15}, "New headphones for work"},
	{"22", core.Income, "Gift", 200, [3]int{2025, 8, 12}, "Birthday gift from parents"},
	{"23", core.Expense, "Entertainment", 85.5, [3]int{2025, 8, 10}, "Concert tickets"},
	{"24", core.Expense, "Transport", 180, [3]int{2025, 8, 8}, "Monthly bus pass"},
	{"25", core.Income, "Salary", 3200, [3]int{2025, 7, 25}, "Monthly salary - Software Engineer"},
	{"26", core.Expense, "Food", 198.45, [3]int{2025, 7, 22}, "Weekly meal prep groceries"},
	{"27", core.Expense, "Bills", 110.25, [3]int{2025, 7, 15}, "Water bill"},
	{"28", core.Income, "Business", 500, [3]int{2025, 7, 10}, "Consulting work - weekend project"},
	{"29", core.Expense, "Other", 75, [3]int{2025, 7, 8}, "Gift for friend's birthday"},
	{"30", core.Expense, "Healthcare", 45, [3]int{2025, 7, 5}, "Pharmacy - prescription refill"},
}

// DemoTransactions returns a fresh copy of the demonstration dataset.
func DemoTransactions() []core.Transaction {
	out := make([]core.Transaction, len(demo))
	for i, d := range demo {
		out[i] = core.Transaction{
			ID:       d.id,
			Type:     d.typ,
			Category: d.category,
			Amount:   d.amount,
			Date:     core.NewDate(d.date[0], d.date[1], d.date[2]),
			Notes:    d.notes,
		}
	}
	return out
}

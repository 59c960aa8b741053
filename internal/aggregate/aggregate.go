// Package aggregate computes derived numeric summaries over a collection of
// transactions. Every function is pure and recomputes from scratch on each
// call; results are never cached, so cost grows linearly with the ledger.
package aggregate

import (
	"cmp"
	"slices"

	"budget/internal/core"
)

// TotalIncome sums the amount of every income transaction.
func TotalIncome(txs []core.Transaction) float64 {
	return sumOf(txs, core.Income)
}

// TotalExpenses sums the amount of every expense transaction.
func TotalExpenses(txs []core.Transaction) float64 {
	return sumOf(txs, core.Expense)
}

// Balance is TotalIncome minus TotalExpenses. It may be negative.
func Balance(txs []core.Transaction) float64 {
	return TotalIncome(txs) - TotalExpenses(txs)
}

// Summarize returns the three headline totals in one value.
func Summarize(txs []core.Transaction) core.Totals {
	income := TotalIncome(txs)
	expenses := TotalExpenses(txs)
	return core.Totals{
		Income:   income,
		Expenses: expenses,
		Balance:  income - expenses,
	}
}

// ByCategory groups transactions of type t by category and sums their amounts.
// Categories without any transaction of that type are absent from the result.
func ByCategory(txs []core.Transaction, t core.Type) map[string]float64 {
	out := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != t {
			continue
		}
		out[tx.Category] += tx.Amount
	}
	return out
}

// Ranked orders category sums by amount, largest first, then by name.
func Ranked(sums map[string]float64) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(sums))
	for name, amount := range sums {
		out = append(out, core.CategoryAmount{Name: name, Amount: amount})
	}
	slices.SortFunc(out, func(a, b core.CategoryAmount) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func sumOf(txs []core.Transaction, t core.Type) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == t {
			total += tx.Amount
		}
	}
	return total
}

// Package query produces filtered, searched and sorted projections of a
// transaction collection without touching the collection itself.
package query

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"budget/internal/core"
)

const (
	All     TypeFilter = "all"
	Income  TypeFilter = TypeFilter(core.Income)
	Expense TypeFilter = TypeFilter(core.Expense)

	ByDate   SortBy = "date"
	ByAmount SortBy = "amount"
)

type (
	// TypeFilter restricts a projection to one transaction type, or none.
	TypeFilter string

	// SortBy names the descending order of a projection.
	SortBy string

	// Params describes a projection. The zero value keeps every transaction,
	// most recent first.
	Params struct {
		Type   TypeFilter
		Search string
		SortBy SortBy
		// Limit caps the result after sorting; zero means no cap.
		Limit int
	}
)

var (
	ErrInvalidFilter = errors.New("invalid type filter")
	ErrInvalidSort   = errors.New("invalid sort order")
)

// ParseTypeFilter accepts all, income or expense. An empty string means all.
func ParseTypeFilter(s string) (TypeFilter, error) {
	f := TypeFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return All, nil
	case All, Income, Expense:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// ParseSortBy accepts date or amount. An empty string means date.
func ParseSortBy(s string) (SortBy, error) {
	o := SortBy(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case "":
		return ByDate, nil
	case ByDate, ByAmount:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
}

// Filter keeps the transactions matching the type filter and, when the
// search term is non-empty, whose category or notes contain it ignoring case.
// Relative order is preserved.
func Filter(txs []core.Transaction, p Params) []core.Transaction {
	term := strings.ToLower(p.Search)
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if p.Type != "" && p.Type != All && string(tx.Type) != string(p.Type) {
			continue
		}
		if term != "" && !matches(tx, term) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Sort orders txs in place, descending by date or amount. Ties keep their
// existing relative order.
func Sort(txs []core.Transaction, by SortBy) {
	switch by {
	case ByAmount:
		slices.SortStableFunc(txs, func(a, b core.Transaction) int {
			return cmp.Compare(b.Amount, a.Amount)
		})
	default:
		slices.SortStableFunc(txs, func(a, b core.Transaction) int {
			return b.Date.Compare(a.Date.Time)
		})
	}
}

// Apply filters, sorts and limits txs according to p and returns a new slice.
func Apply(txs []core.Transaction, p Params) []core.Transaction {
	out := Filter(txs, p)
	Sort(out, p.SortBy)
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

func matches(tx core.Transaction, term string) bool {
	if strings.Contains(strings.ToLower(tx.Category), term) {
		return true
	}
	return tx.Notes != "" && strings.Contains(strings.ToLower(tx.Notes), term)
}

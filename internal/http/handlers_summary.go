package http

import (
	"net/http"

	"budget/internal/aggregate"
	"budget/internal/core"
)

type formattedTotals struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

type summaryResponse struct {
	core.Totals
	Count     int             `json:"count"`
	Currency  string          `json:"currency"`
	Formatted formattedTotals `json:"formatted"`
}

type breakdownResponse struct {
	Type       core.Type             `json:"type"`
	Categories []core.CategoryAmount `json:"categories"`
	Total      float64               `json:"total"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	txs := s.store.Snapshot()
	totals := aggregate.Summarize(txs)

	OK(summaryResponse{
		Totals:   totals,
		Count:    len(txs),
		Currency: s.currency,
		Formatted: formattedTotals{
			Income:   core.FormatAmount(totals.Income, s.currency),
			Expenses: core.FormatAmount(totals.Expenses, s.currency),
			Balance:  core.FormatAmount(totals.Balance, s.currency),
		},
	}).Write(w)
}

// handleCategoryBreakdown sums amounts per category for one type, expense by
// default, largest first.
func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	typ := core.Expense
	if v := r.URL.Query().Get("type"); v != "" {
		parsed, err := core.ParseType(v)
		if err != nil {
			BadRequestError(err.Error()).Write(w)
			return
		}
		typ = parsed
	}

	ranked := aggregate.Ranked(aggregate.ByCategory(s.store.Snapshot(), typ))
	var total float64
	for _, c := range ranked {
		total += c.Amount
	}

	OK(breakdownResponse{Type: typ, Categories: ranked, Total: total}).Write(w)
}

// handleCategoryVocabulary lists the suggested category labels.
func (s *Server) handleCategoryVocabulary(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("type")
	if v == "" {
		OK(map[core.Type][]string{
			core.Income:  core.Categories(core.Income),
			core.Expense: core.Categories(core.Expense),
		}).Write(w)
		return
	}

	typ, err := core.ParseType(v)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	OK(core.Categories(typ)).Write(w)
}

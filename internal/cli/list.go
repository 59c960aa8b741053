package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"budget/internal/core"
	"budget/internal/query"
)

type listCmd struct {
	typ    string
	search string
	sortBy string
	limit  int
	asJSON bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions" }
func (*listCmd) Usage() string {
	return `budget list [-type <all|income|expense>] [-q <text>] [-sort <date|amount>] [-limit <n>] [-json]

  Lists transactions, newest first by default. -q matches category or notes,
  ignoring case.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "all", "Show only this type: all, income or expense.")
	f.StringVar(&c.search, "q", "", "Case-insensitive text to look for in category and notes.")
	f.StringVar(&c.sortBy, "sort", "date", "Sort order: date or amount, largest first.")
	f.IntVar(&c.limit, "limit", 0, "Show at most N transactions. 0 shows all.")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	params, err := c.params()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *Session) error {
		txs := query.Apply(s.Store.Snapshot(), params)
		if c.asJSON {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(txs)
		}
		printTransactions(txs, s.Config.Currency)
		return nil
	})
}

func (c *listCmd) params() (query.Params, error) {
	var (
		p   query.Params
		err error
	)
	if p.Type, err = query.ParseTypeFilter(c.typ); err != nil {
		return p, err
	}
	if p.SortBy, err = query.ParseSortBy(c.sortBy); err != nil {
		return p, err
	}
	if c.limit < 0 {
		return p, fmt.Errorf("invalid limit %d", c.limit)
	}
	p.Search = c.search
	p.Limit = c.limit
	return p, nil
}

// printTransactions writes txs as an aligned table.
func printTransactions(txs []core.Transaction, currency string) {
	if len(txs) == 0 {
		fmt.Fprintln(stdout, "no transactions")
		return
	}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tCATEGORY\tAMOUNT\tNOTES\tID")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Type, tx.Category, core.FormatAmount(tx.Amount, currency), tx.Notes, tx.ID)
	}
	w.Flush()
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"budget/internal/core"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show total income, expenses and balance" }
func (*summaryCmd) Usage() string {
	return `budget summary

  Prints the totals of the whole ledger.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *Session) error {
		printTotals(s.Store.Totals(), s.Store.Len(), s.Config.Currency)
		return nil
	})
}

func printTotals(t core.Totals, count int, currency string) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Income\t%s\t\n", core.FormatAmount(t.Income, currency))
	fmt.Fprintf(w, "Expenses\t%s\t\n", core.FormatAmount(t.Expenses, currency))
	fmt.Fprintf(w, "Balance\t%s\t\n", core.FormatAmount(t.Balance, currency))
	fmt.Fprintf(w, "Transactions\t%d\t\n", count)
	w.Flush()
}

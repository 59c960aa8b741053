package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"budget/internal/aggregate"
	"budget/internal/core"
)

type categoriesCmd struct {
	typ        string
	vocabulary bool
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "break amounts down by category" }
func (*categoriesCmd) Usage() string {
	return `budget categories [-type <income|expense>] [-vocabulary]

  Prints the total per category for one type, largest first, with its share
  of the type total. -vocabulary lists the suggested category labels instead.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "expense", "Transaction type: income or expense.")
	f.BoolVar(&c.vocabulary, "vocabulary", false, "List suggested category labels.")
}

func (c *categoriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := core.ParseType(c.typ)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	if c.vocabulary {
		fmt.Fprintln(stdout, strings.Join(core.Categories(typ), "\n"))
		return subcommands.ExitSuccess
	}

	return withSession(ctx, func(s *Session) error {
		ranked := aggregate.Ranked(aggregate.ByCategory(s.Store.Snapshot(), typ))
		if len(ranked) == 0 {
			fmt.Fprintf(stdout, "no %s transactions\n", typ)
			return nil
		}

		var total float64
		for _, ca := range ranked {
			total += ca.Amount
		}

		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, ca := range ranked {
			share := 0.0
			if total > 0 {
				share = ca.Amount / total * 100
			}
			fmt.Fprintf(w, "%s\t%s\t%.1f%%\t\n", ca.Name, core.FormatAmount(ca.Amount, s.Config.Currency), share)
		}
		fmt.Fprintf(w, "Total\t%s\t\t\n", core.FormatAmount(total, s.Config.Currency))
		return w.Flush()
	})
}

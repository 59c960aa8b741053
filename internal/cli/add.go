package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"budget/internal/core"
)

type addCmd struct {
	fields
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense" }
func (*addCmd) Usage() string {
	return `budget add -type <income|expense> -category <label> -amount <n> [-date YYYY-MM-DD] [-notes <text>]

  Adds a transaction to the ledger and prints it with its new id.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.fields.setFlags(f) }

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := setFlags(f)
	if !set["type"] || !set["amount"] {
		fmt.Fprintln(stderr, "Error: -type and -amount are required.")
		return subcommands.ExitUsageError
	}

	in, err := c.apply(core.Input{Date: core.Today()}, set)
	if err != nil {
		return fail(err)
	}

	return withSession(ctx, func(s *Session) error {
		tx, err := s.Store.Add(ctx, in)
		if err != nil {
			return err
		}
		printTransactions([]core.Transaction{tx}, s.Config.Currency)
		return nil
	})
}

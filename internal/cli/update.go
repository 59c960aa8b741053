package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"budget/internal/core"
)

type updateCmd struct {
	id string
	fields
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "change the fields of a transaction" }
func (*updateCmd) Usage() string {
	return `budget update -id <id> [-type <t>] [-category <c>] [-amount <n>] [-date YYYY-MM-DD] [-notes <text>]

  Replaces the given fields of an existing transaction. Fields not given on
  the command line keep their current value. The id never changes.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to update.")
	c.fields.setFlags(f)
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	set := setFlags(f)

	return withSession(ctx, func(s *Session) error {
		current, ok := s.Store.Get(c.id)
		if !ok {
			return fmt.Errorf("%w: %s", errUnknownID, c.id)
		}
		in, err := c.apply(current.Input(), set)
		if err != nil {
			return err
		}
		if err := s.Store.Update(ctx, c.id, in); err != nil {
			return err
		}
		printTransactions([]core.Transaction{in.WithID(c.id)}, s.Config.Currency)
		return nil
	})
}

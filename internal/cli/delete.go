package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "permanently remove a transaction" }
func (*deleteCmd) Usage() string {
	return `budget delete -id <id>

  Removes the transaction from the ledger. There is no undo.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to delete.")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *Session) error {
		if _, ok := s.Store.Get(c.id); !ok {
			return fmt.Errorf("%w: %s", errUnknownID, c.id)
		}
		if err := s.Store.Delete(ctx, c.id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "deleted %s, %d transactions left\n", c.id, s.Store.Len())
		return nil
	})
}

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"budget/internal/core"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "transactions")
	c.Register(&updateCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")
	c.Register(&listCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&categoriesCmd{}, "reports")

	c.Register(&serveCmd{}, "services")
	c.Register(&watchCmd{}, "services")
}

var errUnknownID = errors.New("no transaction with this id")

// fields are the transaction flags shared by add and update.
type fields struct {
	typ      string
	category string
	amount   string
	date     string
	notes    string
}

func (f *fields) setFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.typ, "type", "", "Transaction type: income or expense.")
	fs.StringVar(&f.category, "category", "", "Category label, e.g. Food or Salary.")
	fs.StringVar(&f.amount, "amount", "", "Non-negative amount, '.' or ',' as decimal separator.")
	fs.StringVar(&f.date, "date", "", "Date as YYYY-MM-DD. Defaults to today when adding.")
	fs.StringVar(&f.notes, "notes", "", "Optional free text.")
}

// apply overlays the flags present in set on base and validates the result.
func (f *fields) apply(base core.Input, set map[string]bool) (core.Input, error) {
	in := base
	var err error
	if set["type"] {
		if in.Type, err = core.ParseType(f.typ); err != nil {
			return core.Input{}, err
		}
	}
	if set["category"] {
		in.Category = strings.TrimSpace(f.category)
	}
	if set["amount"] {
		if in.Amount, err = core.ParseAmount(f.amount); err != nil {
			return core.Input{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, f.amount)
		}
	}
	if set["date"] {
		if in.Date, err = core.ParseDate(f.date); err != nil {
			return core.Input{}, err
		}
	}
	if set["notes"] {
		in.Notes = strings.TrimSpace(f.notes)
	}
	return in, in.Validate()
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// fail prints err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(stderr, "Error:", err)
	return subcommands.ExitFailure
}

// withSession opens a quiet session, runs fn and closes the session.
func withSession(ctx context.Context, fn func(*Session) error) subcommands.ExitStatus {
	s, err := openSession(ctx, true)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if err := fn(s); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

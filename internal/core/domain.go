package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date layout used on the wire and in storage.
const DateLayout = "2006-01-02"

const (
	Income  Type = "income"
	Expense Type = "expense"
)

type (
	// Type is the direction of a transaction. The sign of a movement is carried
	// here, never by the amount.
	Type string

	// Date is a calendar day with no time-of-day or timezone semantics.
	Date struct {
		time.Time
	}

	// Transaction is a single recorded income or expense event.
	Transaction struct {
		ID       string  `json:"id"`
		Type     Type    `json:"type"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Date     Date    `json:"date"`
		Notes    string  `json:"notes,omitempty"`
	}

	// Input carries every field of a Transaction except its identity, which is
	// always assigned by the ledger.
	Input struct {
		Type     Type    `json:"type"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Date     Date    `json:"date"`
		Notes    string  `json:"notes,omitempty"`
	}
)

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// IsValid reports whether t is income or expense.
func (t Type) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// ParseType converts a user supplied string (case-insensitive) to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar day in the local timezone.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date in YYYY-MM-DD form, or an empty string for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Equal reports whether both dates name the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a YYYY-MM-DD string. An empty string yields the zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(b))
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks the constraints the ledger enforces on every write.
// Category vocabularies are not enforced: any non-empty label is accepted.
func (in Input) Validate() error {
	if !in.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, string(in.Type))
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, in.Amount)
	}
	if err := in.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// WithID builds the Transaction identified by id carrying every field of in.
func (in Input) WithID(id string) Transaction {
	return Transaction{
		ID:       id,
		Type:     in.Type,
		Category: in.Category,
		Amount:   in.Amount,
		Date:     in.Date,
		Notes:    in.Notes,
	}
}

// Input returns the mutable fields of t.
func (t Transaction) Input() Input {
	return Input{
		Type:     t.Type,
		Category: t.Category,
		Amount:   t.Amount,
		Date:     t.Date,
		Notes:    t.Notes,
	}
}

// Equal compares two transactions field by field.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Type == o.Type &&
		t.Category == o.Category &&
		t.Amount == o.Amount &&
		t.Date.Equal(o.Date) &&
		t.Notes == o.Notes
}

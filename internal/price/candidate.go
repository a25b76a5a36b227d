package price

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Candidate is one price string found on the page with its parsed value.
type Candidate struct {
	Text  string
	Value decimal.NullDecimal
}

// NewCandidate trims text and parses its amount.
func NewCandidate(text string) Candidate {
	t := strings.TrimSpace(text)
	return Candidate{Text: t, Value: Parse(t)}
}

// Positive reports whether the candidate carries a value greater than zero.
func (c Candidate) Positive() bool {
	return c.Value.Valid && c.Value.Decimal.IsPositive()
}

// ValueString returns the parsed amount, or "" when absent.
func (c Candidate) ValueString() string {
	if !c.Value.Valid {
		return ""
	}
	return c.Value.Decimal.String()
}

// Collection is the output of one Collect call.
type Collection struct {
	Candidates []Candidate

	// Authoritative is set when a narrow probe produced the collection.
	Authoritative bool

	// Probe names the probe that produced the candidates.
	Probe string
}

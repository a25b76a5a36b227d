package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		wantText string
		wantOK   bool
	}{
		{"empty", nil, "", false},
		{"single", []string{"$19.99"}, "$19.99", true},
		{"minimum wins", []string{"$24.99", "$19.99"}, "$19.99", true},
		{"three distinct", []string{"$30.00", "$5.00", "$19.99"}, "$5.00", true},
		{"zero excluded", []string{"$0.00", "$12.00"}, "$12.00", true},
		{"unparsable kept", []string{"See price in cart"}, "See price in cart", true},
		{"first non-positive kept", []string{"$0.00", "Free"}, "$0.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var candidates []Candidate
			for _, s := range tt.texts {
				candidates = append(candidates, NewCandidate(s))
			}

			got, ok := Resolve(candidates)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, got.Text)
		})
	}
}

func TestResolve_UnparsableHasNoValue(t *testing.T) {
	got, ok := Resolve([]Candidate{NewCandidate("Price not found")})
	require.True(t, ok)
	assert.False(t, got.Value.Valid)
	assert.Equal(t, "", got.ValueString())
}

func TestSelect(t *testing.T) {
	narrow := Collection{
		Candidates:    []Candidate{NewCandidate("$24.99"), NewCandidate("$19.99")},
		Authoritative: true,
	}
	got, ok := Select(narrow)
	require.True(t, ok)
	assert.Equal(t, "$24.99", got.Text)

	narrow.Authoritative = false
	got, ok = Select(narrow)
	require.True(t, ok)
	assert.Equal(t, "$19.99", got.Text)

	_, ok = Select(Collection{})
	assert.False(t, ok)
}

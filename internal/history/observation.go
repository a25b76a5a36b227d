// Package history records price observations.
package history

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/law-makers/pricetrack/internal/price"
)

// TimestampLayout is the local-time format of the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the fixed column list of the record.
var Header = []string{"timestamp", "title", "price_text", "price_value", "url"}

var (
	ErrEmptyTitle   = errors.New("observation requires a title")
	ErrNoCandidate  = errors.New("observation requires a price candidate")
	ErrMalformedRow = errors.New("malformed history row")
)

// Observation is one recorded price sighting.
type Observation struct {
	Timestamp  time.Time           `json:"timestamp"`
	Title      string              `json:"title"`
	PriceText  string              `json:"price_text"`
	PriceValue decimal.NullDecimal `json:"price_value"`
	URL        string              `json:"url"`
}

// NewObservation builds an observation stamped at now, truncated to the
// second in local time.
func NewObservation(title string, c price.Candidate, url string, now time.Time) (Observation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Observation{}, ErrEmptyTitle
	}
	if strings.TrimSpace(c.Text) == "" {
		return Observation{}, ErrNoCandidate
	}

	return Observation{
		Timestamp:  now.Local().Truncate(time.Second),
		Title:      title,
		PriceText:  c.Text,
		PriceValue: c.Value,
		URL:        url,
	}, nil
}

// Row renders the observation in Header order.
func (o Observation) Row() []string {
	value := ""
	if o.PriceValue.Valid {
		value = o.PriceValue.Decimal.String()
	}
	return []string{
		o.Timestamp.Format(TimestampLayout),
		o.Title,
		o.PriceText,
		value,
		o.URL,
	}
}

// ParseRow is the inverse of Row.
func ParseRow(row []string) (Observation, error) {
	if len(row) != len(Header) {
		return Observation{}, ErrMalformedRow
	}

	ts, err := time.ParseInLocation(TimestampLayout, row[0], time.Local)
	if err != nil {
		return Observation{}, errors.Join(ErrMalformedRow, err)
	}

	var value decimal.NullDecimal
	if row[3] != "" {
		d, err := decimal.NewFromString(row[3])
		if err != nil {
			return Observation{}, errors.Join(ErrMalformedRow, err)
		}
		value = decimal.NewNullDecimal(d)
	}

	return Observation{
		Timestamp:  ts,
		Title:      row[1],
		PriceText:  row[2],
		PriceValue: value,
		URL:        row[4],
	}, nil
}

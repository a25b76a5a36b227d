package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricetrack/internal/price"
)

func mustObservation(t *testing.T, title, text string, at time.Time) Observation {
	t.Helper()
	o, err := NewObservation(title, price.NewCandidate(text), "https://shop.example/dp/1", at)
	require.NoError(t, err)
	return o
}

func TestNewObservation(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.Local)

	o := mustObservation(t, "  LEGO Creator Forest Animals  ", "$1,234.56", at)
	assert.Equal(t, "LEGO Creator Forest Animals", o.Title)
	assert.Equal(t, "$1,234.56", o.PriceText)
	assert.Equal(t, 0, o.Timestamp.Nanosecond())
	assert.Equal(t, []string{"2026-03-14 09:26:53", "LEGO Creator Forest Animals", "$1,234.56", "1234.56", "https://shop.example/dp/1"}, o.Row())

	_, err := NewObservation(" ", price.NewCandidate("$1"), "u", at)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = NewObservation("Widget", price.Candidate{}, "u", at)
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestObservation_AbsentValue(t *testing.T) {
	o := mustObservation(t, "Widget", "See price in cart", time.Now())
	assert.Equal(t, "", o.Row()[3])

	back, err := ParseRow(o.Row())
	require.NoError(t, err)
	assert.False(t, back.PriceValue.Valid)
}

func TestCSVStore_HeaderOnceAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "price_history.csv")
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

	first := NewCSVStore(path)
	require.NoError(t, first.Append(ctx, mustObservation(t, "Widget, large", "$24.99", at)))
	require.NoError(t, first.Close())

	second := NewCSVStore(path)
	require.NoError(t, second.Append(ctx, mustObservation(t, "Widget, large", "$19.99", at.Add(time.Hour))))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp,title,price_text,price_value,url", lines[0])
	assert.Equal(t, `2026-01-02 03:04:05,"Widget, large",$24.99,24.99,https://shop.example/dp/1`, lines[1])
	assert.Equal(t, 1, strings.Count(string(raw), "timestamp,title"))

	obs, err := second.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, "$19.99", obs[1].PriceText)
	assert.True(t, obs[1].Timestamp.Equal(at.Add(time.Hour)))

	last, err := second.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "19.99", last[0].PriceValue.Decimal.String())
}

func TestCSVStore_EmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.NoError(t, NewCSVStore(path).Append(context.Background(), mustObservation(t, "W", "$1.00", time.Now())))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "timestamp,title,price_text,price_value,url\n"))
}

func TestCSVStore_RecentMissingFile(t *testing.T) {
	obs, err := NewCSVStore(filepath.Join(t.TempDir(), "none.csv")).Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer s.Close()

	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.Local)
	require.NoError(t, s.Append(ctx, mustObservation(t, "Widget", "$24.99", at)))
	require.NoError(t, s.Append(ctx, mustObservation(t, "Widget", "Currently unavailable", at.Add(time.Minute))))
	require.NoError(t, s.Append(ctx, mustObservation(t, "Widget", "$19.99", at.Add(2*time.Minute))))

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "24.99", all[0].PriceValue.Decimal.String())
	assert.False(t, all[1].PriceValue.Valid)
	assert.True(t, all[0].Timestamp.Equal(at))

	last, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "$19.99", last[1].PriceText)
}

type failingStore struct {
	err     error
	appends int
}

func (f *failingStore) Append(ctx context.Context, o Observation) error {
	f.appends++
	return f.err
}

func (f *failingStore) Close() error { return nil }

func TestMirroredStore(t *testing.T) {
	ctx := context.Background()
	o := mustObservation(t, "Widget", "$5.00", time.Now())

	primary := &failingStore{}
	mirror := &failingStore{err: errors.New("disk full")}
	require.NoError(t, NewMirroredStore(primary, mirror).Append(ctx, o))
	assert.Equal(t, 1, primary.appends)
	assert.Equal(t, 1, mirror.appends)

	primary = &failingStore{err: errors.New("read-only")}
	mirror = &failingStore{}
	assert.Error(t, NewMirroredStore(primary, mirror).Append(ctx, o))
	assert.Equal(t, 0, mirror.appends)
}

package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// CSVStore appends observations to a CSV file, writing the header when the
// file is new or empty.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store for path. Nothing is touched until Append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the record file location
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes one row, preceded by the header if the file is empty.
func (s *CSVStore) Append(ctx context.Context, o Observation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat history: %w", err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := writer.Write(o.Row()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush history: %w", err)
	}
	return file.Close()
}

// Close is a no-op; every append opens and closes the file.
func (s *CSVStore) Close() error {
	return nil
}

// Recent reads the record back for display. A missing file yields no rows.
func (s *CSVStore) Recent(ctx context.Context, limit int) ([]Observation, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(Header)

	var obs []Observation
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		if line == 1 && slices.Equal(row, Header) {
			continue
		}

		o, err := ParseRow(row)
		if err != nil {
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		obs = append(obs, o)
	}

	return tail(obs, limit), nil
}

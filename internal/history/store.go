package history

import (
	"context"
	"errors"

	"github.com/law-makers/pricetrack/internal/runctx"
)

// Store appends observations. Implementations never rewrite prior entries.
type Store interface {
	Append(ctx context.Context, o Observation) error
	Close() error
}

// Reader returns the most recent observations, oldest first. A limit <= 0
// returns everything.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Observation, error)
}

// MirroredStore writes to a primary store and then to best-effort mirrors.
// Only a primary failure fails the append.
type MirroredStore struct {
	primary Store
	mirrors []Store
}

// NewMirroredStore wraps primary with zero or more mirrors
func NewMirroredStore(primary Store, mirrors ...Store) *MirroredStore {
	return &MirroredStore{primary: primary, mirrors: mirrors}
}

func (m *MirroredStore) Append(ctx context.Context, o Observation) error {
	if err := m.primary.Append(ctx, o); err != nil {
		return err
	}

	logger := runctx.Logger(ctx)
	for _, s := range m.mirrors {
		if err := s.Append(ctx, o); err != nil {
			logger.Warn().Err(err).Msg("History mirror append failed")
		}
	}
	return nil
}

// Close closes every store and joins their errors
func (m *MirroredStore) Close() error {
	errs := []error{m.primary.Close()}
	for _, s := range m.mirrors {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// tail keeps the last limit entries of obs.
func tail(obs []Observation, limit int) []Observation {
	if limit > 0 && len(obs) > limit {
		return obs[len(obs)-limit:]
	}
	return obs
}

package vocab

import (
	"context"
	"sync/atomic"

	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Source loads vocabulary entries from a backing store (a JSON file, a
// terminology database).  Implementations live under
// internal/infrastructure/vocabsource.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]clinical.VocabularyEntry, error)
}

// Store holds the live vocabulary index and swaps it atomically on reload.
// A Store that has never loaded successfully reports the vocabulary as
// unavailable rather than failing construction, so the extraction pipeline
// can still emit unmapped mentions.
type Store struct {
	current atomic.Pointer[Index]
	source  Source
	logger  logging.Logger
}

// NewStore wires a Store to its source.  Call Load before first use.
func NewStore(source Source, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Store{source: source, logger: logger.Named("vocab")}
}

// NewStaticStore wraps an already-built index, for tests and embedded use.
func NewStaticStore(ix *Index, logger logging.Logger) *Store {
	s := NewStore(nil, logger)
	s.current.Store(ix)
	return s
}

// Load pulls entries from the source and swaps in a fresh index.  On
// failure the previous index, if any, stays live.
func (s *Store) Load(ctx context.Context) error {
	if s.source == nil {
		return apperrors.New(apperrors.ErrCodeVocabularyLoadFailed, "store has no source")
	}
	entries, err := s.source.Load(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeVocabularyLoadFailed,
			"vocabulary load from "+s.source.Name()+" failed")
	}
	ix, err := NewIndex(entries)
	if err != nil {
		return err
	}
	s.current.Store(ix)
	s.logger.Info("vocabulary loaded",
		logging.String("source", s.source.Name()),
		logging.Int("entries", ix.Size()))
	return nil
}

// Current returns the live index, or a VocabularyUnavailable error when no
// load has succeeded yet.
func (s *Store) Current() (*Index, error) {
	ix := s.current.Load()
	if ix == nil {
		return nil, apperrors.VocabularyUnavailable("no vocabulary index loaded")
	}
	return ix, nil
}

// Ready reports whether an index is live.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

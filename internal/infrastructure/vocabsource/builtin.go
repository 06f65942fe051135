package vocabsource

import (
	"context"

	"github.com/cortexmed/clinextract/internal/vocab"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// BuiltinSource serves the compiled-in starter vocabulary. It never fails and
// is the default when no external source is configured.
type BuiltinSource struct{}

var _ vocab.Source = BuiltinSource{}

// NewBuiltinSource returns the built-in vocabulary source.
func NewBuiltinSource() BuiltinSource {
	return BuiltinSource{}
}

// Name identifies the source in logs.
func (BuiltinSource) Name() string {
	return "builtin"
}

// Load returns a fresh copy of the built-in entries.
func (BuiltinSource) Load(_ context.Context) ([]clinical.VocabularyEntry, error) {
	return vocab.DefaultEntries(), nil
}

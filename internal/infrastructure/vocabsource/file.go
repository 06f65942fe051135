// Package vocabsource provides the concrete vocabulary sources the store can
// load from: the built-in starter vocabulary, a JSON file, or PostgreSQL.
package vocabsource

import (
	"context"
	"encoding/json"
	"os"

	"github.com/cortexmed/clinextract/internal/vocab"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// FileSource loads vocabulary entries from a JSON file containing an array of
// entries.
type FileSource struct {
	path string
}

var _ vocab.Source = (*FileSource)(nil)

// NewFileSource returns a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source in logs.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Load reads and decodes the vocabulary file. The file content is decoded in
// full before returning, so a partially written file never yields a partial
// vocabulary.
func (s *FileSource) Load(ctx context.Context) ([]clinical.VocabularyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Timeout("vocabulary load cancelled").WithCause(err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeVocabularyLoadFailed, "failed to read vocabulary file").
			WithDetail(s.path)
	}

	var entries []clinical.VocabularyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeVocabularyLoadFailed, "failed to parse vocabulary file").
			WithDetail(s.path)
	}

	return entries, nil
}

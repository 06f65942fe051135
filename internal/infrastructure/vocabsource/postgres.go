package vocabsource

import (
	"context"

	"github.com/cortexmed/clinextract/internal/infrastructure/database/postgres/repositories"
	"github.com/cortexmed/clinextract/internal/vocab"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// PostgresSource loads vocabulary entries from the vocabulary repository.
type PostgresSource struct {
	repo *repositories.VocabularyRepository
}

var _ vocab.Source = (*PostgresSource)(nil)

// NewPostgresSource wraps a vocabulary repository as a load source.
func NewPostgresSource(repo *repositories.VocabularyRepository) *PostgresSource {
	return &PostgresSource{repo: repo}
}

// Name identifies the source in logs.
func (s *PostgresSource) Name() string {
	return "postgres"
}

// Load fetches the full vocabulary from the database.
func (s *PostgresSource) Load(ctx context.Context) ([]clinical.VocabularyEntry, error) {
	if s.repo == nil {
		return nil, apperrors.InvalidParam("vocabulary repository is nil")
	}
	return s.repo.ListAll(ctx)
}

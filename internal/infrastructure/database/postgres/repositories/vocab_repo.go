// Package repositories provides PostgreSQL-backed persistence for the
// concept vocabulary.
package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// VocabularyRepository stores and retrieves vocabulary entries. Every public
// method accepts a context.Context for cancellation propagation and uses
// parameterised queries exclusively.
type VocabularyRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewVocabularyRepository constructs a ready-to-use VocabularyRepository.
func NewVocabularyRepository(pool *pgxpool.Pool, logger logging.Logger) *VocabularyRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &VocabularyRepository{pool: pool, logger: logger}
}

// ReplaceAll atomically replaces the full vocabulary with entries. Either
// every entry is stored or the previous contents remain untouched.
func (r *VocabularyRepository) ReplaceAll(ctx context.Context, entries []clinical.VocabularyEntry) error {
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeVocabularyLoadFailed,
				fmt.Sprintf("invalid vocabulary entry at index %d", i))
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDBConnectionError, "failed to begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM vocabulary_entries`); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDBQueryError, "failed to clear vocabulary")
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO vocabulary_entries (vocabulary_id, concept_id, concept_name, synonyms, domain_id)
			VALUES ($1,$2,$3,$4,$5)`,
			string(e.VocabularyID), e.ConceptID, e.ConceptName, e.Synonyms, string(e.DomainID),
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return apperrors.Wrap(err, apperrors.CodeDBQueryError, "failed to insert vocabulary entry")
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDBQueryError, "failed to flush vocabulary batch")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDBConnectionError, "failed to commit transaction")
	}

	r.logger.Info("replaced vocabulary", logging.Int("entries", len(entries)))
	return nil
}

// ListAll loads every vocabulary entry in deterministic order.
func (r *VocabularyRepository) ListAll(ctx context.Context) ([]clinical.VocabularyEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT vocabulary_id, concept_id, concept_name, synonyms, domain_id
		FROM vocabulary_entries
		ORDER BY vocabulary_id, concept_id`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDBQueryError, "failed to query vocabulary")
	}
	defer rows.Close()

	var entries []clinical.VocabularyEntry
	for rows.Next() {
		var (
			e                 clinical.VocabularyEntry
			vocabID, domainID string
		)
		if err := rows.Scan(&vocabID, &e.ConceptID, &e.ConceptName, &e.Synonyms, &domainID); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDBQueryError, "failed to scan vocabulary entry")
		}
		e.VocabularyID = clinical.VocabularyID(vocabID)
		e.DomainID = clinical.Domain(domainID)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDBQueryError, "failed to read vocabulary rows")
	}

	return entries, nil
}

// Count returns the number of stored entries.
func (r *VocabularyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vocabulary_entries`).Scan(&n); err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeDBQueryError, "failed to count vocabulary entries")
	}
	return n, nil
}

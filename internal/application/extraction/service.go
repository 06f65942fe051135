// Package extraction provides the application-level extraction pipeline.
// It orchestrates section segmentation, the extractor ensemble, assertion
// classification, and concept mapping into a single per-document call, with
// a wall-clock budget and a bounded worker pool for batches.
package extraction

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/cortexmed/clinextract/internal/config"
	"github.com/cortexmed/clinextract/internal/engine/contextual"
	"github.com/cortexmed/clinextract/internal/engine/ensemble"
	"github.com/cortexmed/clinextract/internal/engine/measures"
	"github.com/cortexmed/clinextract/internal/engine/sectionizer"
	"github.com/cortexmed/clinextract/internal/engine/spanner"
	"github.com/cortexmed/clinextract/internal/infrastructure/candcache"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/prometheus"
	"github.com/cortexmed/clinextract/internal/rank"
	"github.com/cortexmed/clinextract/internal/vocab"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

// Service defines the document extraction operations.
type Service interface {
	ExtractDocument(ctx context.Context, input *ExtractInput) (*Result, error)
	ExtractBatch(ctx context.Context, inputs []*ExtractInput) (*BatchResult, error)
}

// ExtractInput is one document to process.
type ExtractInput struct {
	// DocumentID is optional; a UUID is generated when empty.
	DocumentID string
	// Text is the raw note text.  It is NFC-normalized before processing.
	Text string
	// NoteType is free-form metadata carried through to the result.
	NoteType string
}

// Result is the full output for one document.
type Result struct {
	RequestID  string
	DocumentID string
	NoteType   string
	Sections   []clinical.SectionSpan
	Mentions   []clinical.Mention
	// Candidates holds the ranked concept candidates per mention ID.  A
	// mention with no match maps to an empty slice.
	Candidates map[clinical.MentionID][]clinical.ConceptCandidate
	// VocabularyDegraded is true when the vocabulary index was unavailable
	// and all mentions were returned unmapped.
	VocabularyDegraded bool
	Duration           time.Duration
}

// BatchError records one failed document within a batch.
type BatchError struct {
	Index      int
	DocumentID string
	Error      string
}

// BatchResult aggregates a batch run.  Results is index-aligned with the
// inputs; failed slots are nil.
type BatchResult struct {
	Results   []*Result
	Succeeded int
	Failed    int
	Errors    []BatchError
	Duration  time.Duration
}

type service struct {
	segmenter   *sectionizer.Segmenter
	ensemble    *ensemble.Ensemble
	classifier  *contextual.Classifier
	ranker      *rank.Ranker
	index       rank.IndexProvider
	cache       candcache.Cache
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
	timeout     time.Duration
	maxDocBytes int
	concurrency int
}

// NewService wires the pipeline from configuration.  lexicons provides the
// trigger lexicon for the span extractor; index provides the vocabulary for
// concept mapping.  cache may be nil to disable candidate caching; metrics
// may be nil to disable instrumentation.
func NewService(
	cfg *config.Config,
	lexicons spanner.LexiconProvider,
	index rank.IndexProvider,
	cache candcache.Cache,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
) (Service, error) {
	if cfg == nil {
		return nil, apperrors.InvalidParam("config is required")
	}
	if index == nil {
		return nil, apperrors.InvalidParam("vocabulary index provider is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prometheus.NopAppMetrics()
	}

	spanExt, err := spanner.New(spanner.Config{MinTermLength: cfg.Engine.MinTermLength}, lexicons, logger)
	if err != nil {
		return nil, err
	}
	ens, err := ensemble.New(
		ensemble.Config{MinOverlap: cfg.Engine.MinOverlap, AgreementBonus: cfg.Engine.AgreementBonus},
		[]ensemble.Extractor{spanExt, measures.New(logger)},
		logger,
	)
	if err != nil {
		return nil, err
	}
	ranker, err := rank.New(
		rank.Config{TopK: cfg.Rank.TopK, MinFuzzyScore: cfg.Rank.MinFuzzyScore, ExactThreshold: cfg.Rank.ExactThreshold},
		index,
		logger,
	)
	if err != nil {
		return nil, err
	}

	return &service{
		segmenter: sectionizer.New(),
		ensemble:  ens,
		classifier: contextual.New(contextual.Config{
			MaxScopeChars:          cfg.Engine.MaxScopeChars,
			PrecedingContextChars:  cfg.Engine.PrecedingContextChars,
			LateralityWindowTokens: cfg.Engine.LateralityWindowTokens,
		}),
		ranker:      ranker,
		index:       index,
		cache:       cache,
		metrics:     metrics,
		logger:      logger.Named("extraction"),
		timeout:     cfg.Engine.Timeout,
		maxDocBytes: cfg.Engine.MaxDocumentBytes,
		concurrency: cfg.Worker.Concurrency,
	}, nil
}

// ExtractDocument runs the full pipeline over one document.  The call is
// bounded by the configured timeout; on deadline it fails with a timeout
// error and no partial output.
func (s *service) ExtractDocument(ctx context.Context, input *ExtractInput) (*Result, error) {
	start := time.Now()

	res, size, err := s.extract(ctx, input)
	if err != nil {
		prometheus.RecordDocument(s.metrics, false, 0, 0, 0)
		prometheus.RecordError(s.metrics, "extraction", string(apperrors.GetCode(err)))
		return nil, err
	}

	res.Duration = time.Since(start)
	prometheus.RecordDocument(s.metrics, true, size, len(res.Sections), res.Duration)
	s.logger.Info("document extracted",
		logging.String("document_id", res.DocumentID),
		logging.Int("sections", len(res.Sections)),
		logging.Int("mentions", len(res.Mentions)),
		logging.Bool("vocabulary_degraded", res.VocabularyDegraded),
		logging.Duration("duration", res.Duration),
	)
	return res, nil
}

func (s *service) extract(ctx context.Context, input *ExtractInput) (*Result, int, error) {
	if input == nil {
		return nil, 0, apperrors.InvalidParam("extract input is required")
	}

	docID := input.DocumentID
	if docID == "" {
		docID = uuid.NewString()
	}

	// Empty or whitespace-only text is a valid document with nothing in it,
	// not an input error.
	if strings.TrimSpace(input.Text) == "" {
		return &Result{
			RequestID:  uuid.NewString(),
			DocumentID: docID,
			NoteType:   input.NoteType,
			Sections:   []clinical.SectionSpan{},
			Mentions:   []clinical.Mention{},
			Candidates: map[clinical.MentionID][]clinical.ConceptCandidate{},
		}, 0, nil
	}

	text := norm.NFC.String(input.Text)
	if s.maxDocBytes > 0 && len(text) > s.maxDocBytes {
		return nil, 0, apperrors.New(apperrors.ErrCodeDocumentTooLarge,
			fmt.Sprintf("document is %d bytes, limit is %d", len(text), s.maxDocBytes))
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sections := s.segmenter.Segment(text)

	mentions, err := s.ensemble.Extract(ctx, docID, text, sections)
	if err != nil {
		return nil, 0, err
	}
	s.metrics.MentionsMergedTotal.WithLabelValues().Add(float64(len(mentions)))

	for i := range mentions {
		m := &mentions[i]
		// Axes already voted by the ensemble (extractor-supplied) stand;
		// the classifier fills whatever was left unset.
		cc := s.classifier.Classify(text, m.Section, m.StartOffset, m.EndOffset)
		if m.Assertion == "" {
			m.Assertion = cc.Assertion
		}
		if m.Temporality == "" {
			m.Temporality = cc.Temporality
		}
		if m.Experiencer == "" {
			m.Experiencer = cc.Experiencer
		}
		if m.Laterality == clinical.LateralityNone {
			m.Laterality = cc.Laterality
		}
		s.metrics.MentionConfidence.WithLabelValues().Observe(m.Confidence)

		if err := m.Validate(text); err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeInternal,
				fmt.Sprintf("mention %d failed validation", i))
		}
	}

	candidates, degraded, err := s.mapCandidates(ctx, mentions)
	if err != nil {
		return nil, 0, err
	}

	return &Result{
		RequestID:          uuid.NewString(),
		DocumentID:         docID,
		NoteType:           input.NoteType,
		Sections:           sections,
		Mentions:           mentions,
		Candidates:         candidates,
		VocabularyDegraded: degraded,
	}, len(text), nil
}

// mapCandidates maps every mention to concept candidates, consulting the
// candidate cache per normalized term.  An unavailable vocabulary degrades
// to unmapped mentions instead of failing the extraction.
func (s *service) mapCandidates(ctx context.Context, mentions []clinical.Mention) (map[clinical.MentionID][]clinical.ConceptCandidate, bool, error) {
	out := make(map[clinical.MentionID][]clinical.ConceptCandidate, len(mentions))

	ix, err := s.index.Current()
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeVocabularyUnavailable) {
			s.logger.Warn("vocabulary unavailable, returning unmapped mentions", logging.Err(err))
			for i := range mentions {
				out[mentions[i].ID] = []clinical.ConceptCandidate{}
				s.metrics.UnmappedMentionsTotal.WithLabelValues().Inc()
			}
			return out, true, nil
		}
		return nil, false, err
	}

	mapStart := time.Now()
	for i := range mentions {
		if err := ctx.Err(); err != nil {
			return nil, false, apperrors.Timeout("concept mapping cancelled").WithCause(err)
		}

		m := &mentions[i]
		term := m.LexicalVariant
		if term == "" {
			term = m.Text
		}
		key := candcache.Key(vocab.Normalize(term), m.Domain)

		if cands, ok := s.cachedCandidates(ctx, key, m.ID); ok {
			out[m.ID] = cands
			s.metrics.CandidatesPerMention.WithLabelValues().Observe(float64(len(cands)))
			continue
		}

		cands := s.ranker.Candidates(ix, m)
		out[m.ID] = cands
		s.metrics.CandidatesPerMention.WithLabelValues().Observe(float64(len(cands)))
		if len(cands) == 0 {
			s.metrics.UnmappedMentionsTotal.WithLabelValues().Inc()
		}
		s.storeCandidates(ctx, key, cands)
	}
	s.metrics.MappingDuration.WithLabelValues().Observe(time.Since(mapStart).Seconds())

	return out, false, nil
}

// cachedCandidates returns the cached candidates for key rebound to the
// given mention ID.
func (s *service) cachedCandidates(ctx context.Context, key string, id clinical.MentionID) ([]clinical.ConceptCandidate, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, ok := s.cache.Get(ctx, key)
	prometheus.RecordCacheAccess(s.metrics, "candidates", ok)
	if !ok {
		return nil, false
	}
	cands := make([]clinical.ConceptCandidate, len(cached))
	copy(cands, cached)
	for i := range cands {
		cands[i].MentionID = id
	}
	return cands, true
}

// storeCandidates caches candidates under key with the mention binding
// cleared, so the entry is reusable across documents.
func (s *service) storeCandidates(ctx context.Context, key string, cands []clinical.ConceptCandidate) {
	if s.cache == nil {
		return
	}
	stored := make([]clinical.ConceptCandidate, len(cands))
	copy(stored, cands)
	for i := range stored {
		stored[i].MentionID = ""
	}
	s.cache.Set(ctx, key, stored)
}

// ExtractBatch processes independent documents under a bounded worker pool.
// Each document gets its own timeout budget; one failure never aborts the
// others.
func (s *service) ExtractBatch(ctx context.Context, inputs []*ExtractInput) (*BatchResult, error) {
	if len(inputs) == 0 {
		return nil, apperrors.InvalidParam("at least one document is required")
	}

	start := time.Now()
	concurrency := s.concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	s.logger.Info("batch extraction started",
		logging.Int("documents", len(inputs)),
		logging.Int("concurrency", concurrency),
	)

	sem := make(chan struct{}, concurrency)
	results := make([]*Result, len(inputs))

	var (
		mu        sync.Mutex
		succeeded int32
		failed    int32
		batchErrs []BatchError
	)

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, in *ExtractInput) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				batchErrs = append(batchErrs, BatchError{Index: idx, DocumentID: docIDOf(in), Error: ctx.Err().Error()})
				mu.Unlock()
				atomic.AddInt32(&failed, 1)
				return
			}

			res, err := s.ExtractDocument(ctx, in)
			if err != nil {
				mu.Lock()
				batchErrs = append(batchErrs, BatchError{Index: idx, DocumentID: docIDOf(in), Error: err.Error()})
				mu.Unlock()
				atomic.AddInt32(&failed, 1)
				return
			}
			results[idx] = res
			atomic.AddInt32(&succeeded, 1)
		}(i, input)
	}
	wg.Wait()

	elapsed := time.Since(start)
	s.logger.Info("batch extraction finished",
		logging.Int("succeeded", int(atomic.LoadInt32(&succeeded))),
		logging.Int("failed", int(atomic.LoadInt32(&failed))),
		logging.Duration("duration", elapsed),
	)

	return &BatchResult{
		Results:   results,
		Succeeded: int(atomic.LoadInt32(&succeeded)),
		Failed:    int(atomic.LoadInt32(&failed)),
		Errors:    batchErrs,
		Duration:  elapsed,
	}, nil
}

func docIDOf(in *ExtractInput) string {
	if in == nil {
		return ""
	}
	return in.DocumentID
}

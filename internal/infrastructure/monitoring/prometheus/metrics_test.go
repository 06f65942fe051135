package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_RegistersAll(t *testing.T) {
	m, c := newTestAppMetrics(t)

	// Touch a sample from each group so the vectors materialise.
	m.DocumentsProcessedTotal.WithLabelValues("ok").Inc()
	m.MentionsExtractedTotal.WithLabelValues("lexicon").Add(3)
	m.CandidatesPerMention.WithLabelValues().Observe(5)
	m.VocabularySize.WithLabelValues("builtin").Set(42)
	m.ErrorsTotal.WithLabelValues("rank", "VOC_001").Inc()

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_documents_processed_total{status="ok"} 1`)
	assert.Contains(t, output, `test_unit_mentions_extracted_total{extractor="lexicon"} 3`)
	assert.Contains(t, output, "test_unit_candidates_per_mention_count 1")
	assert.Contains(t, output, `test_unit_vocabulary_size{source="builtin"} 42`)
	assert.Contains(t, output, `test_unit_errors_total{code="VOC_001",component="rank"} 1`)
}

func TestRecordDocument(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordDocument(m, true, 1024, 4, 50*time.Millisecond)
	RecordDocument(m, false, 0, 0, 0)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_documents_processed_total{status="ok"} 1`)
	assert.Contains(t, output, `test_unit_documents_processed_total{status="error"} 1`)
	// Failed documents do not skew the size/duration histograms.
	assert.Contains(t, output, "test_unit_document_size_bytes_count 1")
}

func TestRecordCacheAccess(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordCacheAccess(m, "candidates", true)
	RecordCacheAccess(m, "candidates", true)
	RecordCacheAccess(m, "candidates", false)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_cache_hits_total{cache="candidates"} 2`)
	assert.Contains(t, output, `test_unit_cache_misses_total{cache="candidates"} 1`)
}

func TestRecordVocabularyReload(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordVocabularyReload(m, "file", 200, nil)
	RecordVocabularyReload(m, "file", 0, errors.New("load failed"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_vocabulary_reloads_total{status="ok"} 1`)
	assert.Contains(t, output, `test_unit_vocabulary_reloads_total{status="error"} 1`)
	// Failed reloads keep the last good size.
	assert.Contains(t, output, `test_unit_vocabulary_size{source="file"} 200`)
}

package prometheus

import (
	"time"
)

// AppMetrics holds all extraction pipeline metrics.
type AppMetrics struct {
	// Document pipeline
	DocumentsProcessedTotal CounterVec
	ExtractionDuration      HistogramVec
	DocumentSizeBytes       HistogramVec
	SectionsPerDocument     HistogramVec

	// Extractors and ensemble
	MentionsExtractedTotal CounterVec
	MentionsMergedTotal    CounterVec
	MentionConfidence      HistogramVec

	// Concept mapping
	MappingDuration       HistogramVec
	CandidatesPerMention  HistogramVec
	UnmappedMentionsTotal CounterVec

	// Caches
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// Vocabulary and lexicon
	VocabularySize         GaugeVec
	VocabularyReloadsTotal CounterVec
	LexiconReloadsTotal    CounterVec

	// System
	ErrorsTotal CounterVec
}

// Default buckets
var (
	DefaultExtractionDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultDocumentSizeBuckets       = []float64{100, 1000, 10000, 100000, 1000000}
	DefaultCountBuckets              = []float64{0, 1, 2, 5, 10, 25, 50, 100, 250}
	DefaultConfidenceBuckets         = []float64{.3, .4, .5, .6, .7, .8, .9, 1}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.DocumentsProcessedTotal = collector.RegisterCounter("documents_processed_total", "Documents processed", "status")
	m.ExtractionDuration = collector.RegisterHistogram("extraction_duration_seconds", "End-to-end extraction duration", DefaultExtractionDurationBuckets)
	m.DocumentSizeBytes = collector.RegisterHistogram("document_size_bytes", "Input document size", DefaultDocumentSizeBuckets)
	m.SectionsPerDocument = collector.RegisterHistogram("sections_per_document", "Sections detected per document", DefaultCountBuckets)

	m.MentionsExtractedTotal = collector.RegisterCounter("mentions_extracted_total", "Raw mentions emitted per extractor", "extractor")
	m.MentionsMergedTotal = collector.RegisterCounter("mentions_merged_total", "Mentions after ensemble merge")
	m.MentionConfidence = collector.RegisterHistogram("mention_confidence", "Merged mention confidence", DefaultConfidenceBuckets)

	m.MappingDuration = collector.RegisterHistogram("mapping_duration_seconds", "Concept mapping duration", DefaultExtractionDurationBuckets)
	m.CandidatesPerMention = collector.RegisterHistogram("candidates_per_mention", "Concept candidates per mention", DefaultCountBuckets)
	m.UnmappedMentionsTotal = collector.RegisterCounter("unmapped_mentions_total", "Mentions with no concept candidates")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.VocabularySize = collector.RegisterGauge("vocabulary_size", "Indexed vocabulary entries", "source")
	m.VocabularyReloadsTotal = collector.RegisterCounter("vocabulary_reloads_total", "Vocabulary reloads", "status")
	m.LexiconReloadsTotal = collector.RegisterCounter("lexicon_reloads_total", "Lexicon reloads", "status")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}

// NopAppMetrics returns an AppMetrics whose collectors record nothing.
// Callers that run with metrics disabled use it instead of nil checks.
func NopAppMetrics() *AppMetrics {
	return &AppMetrics{
		DocumentsProcessedTotal: &noopCounterVec{},
		ExtractionDuration:      &noopHistogramVec{},
		DocumentSizeBytes:       &noopHistogramVec{},
		SectionsPerDocument:     &noopHistogramVec{},
		MentionsExtractedTotal:  &noopCounterVec{},
		MentionsMergedTotal:     &noopCounterVec{},
		MentionConfidence:       &noopHistogramVec{},
		MappingDuration:         &noopHistogramVec{},
		CandidatesPerMention:    &noopHistogramVec{},
		UnmappedMentionsTotal:   &noopCounterVec{},
		CacheHitsTotal:          &noopCounterVec{},
		CacheMissesTotal:        &noopCounterVec{},
		VocabularySize:          &noopGaugeVec{},
		VocabularyReloadsTotal:  &noopCounterVec{},
		LexiconReloadsTotal:     &noopCounterVec{},
		ErrorsTotal:             &noopCounterVec{},
	}
}

// Helpers

// RecordDocument records one processed document.
func RecordDocument(metrics *AppMetrics, ok bool, size int, sections int, duration time.Duration) {
	status := "ok"
	if !ok {
		status = "error"
	}
	metrics.DocumentsProcessedTotal.WithLabelValues(status).Inc()
	if ok {
		metrics.ExtractionDuration.WithLabelValues().Observe(duration.Seconds())
		metrics.DocumentSizeBytes.WithLabelValues().Observe(float64(size))
		metrics.SectionsPerDocument.WithLabelValues().Observe(float64(sections))
	}
}

// RecordCacheAccess records a hit or miss against a named cache.
func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordVocabularyReload records a reload attempt and, on success, the new
// index size.
func RecordVocabularyReload(metrics *AppMetrics, source string, size int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.VocabularyReloadsTotal.WithLabelValues(status).Inc()
	if err == nil {
		metrics.VocabularySize.WithLabelValues(source).Set(float64(size))
	}
}

// RecordError counts one error against a component.
func RecordError(metrics *AppMetrics, component, code string) {
	metrics.ErrorsTotal.WithLabelValues(component, code).Inc()
}

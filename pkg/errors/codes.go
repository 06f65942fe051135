package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeInvalidInput   ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeConflict       ErrorCode = "COMMON_004"
	ErrCodeTimeout        ErrorCode = "COMMON_005"
	ErrCodeValidation     ErrorCode = "COMMON_006"
	ErrCodeSerialization  ErrorCode = "COMMON_007"
	ErrCodeDatabaseError  ErrorCode = "COMMON_008"
	ErrCodeCacheError     ErrorCode = "COMMON_009"
	ErrCodeNotImplemented ErrorCode = "COMMON_010"
)

// Aliases used throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeInvalidInput
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeTimeout        = ErrCodeTimeout
	CodeValidation     = ErrCodeValidation
	CodeDatabaseError  = ErrCodeDatabaseError
	CodeCacheError     = ErrCodeCacheError
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	// Domain specific aliases
	CodeLexiconLoad           = ErrCodeLexiconLoadFailed
	CodeVocabularyUnavailable = ErrCodeVocabularyUnavailable
	CodeConceptNotFound       = ErrCodeConceptNotFound
)

// Lexicon Module Error Codes
const (
	ErrCodeLexiconLoadFailed    ErrorCode = "LEX_001"
	ErrCodeLexiconFileMissing   ErrorCode = "LEX_002"
	ErrCodeLexiconEntryInvalid  ErrorCode = "LEX_003"
	ErrCodeLexiconDomainUnknown ErrorCode = "LEX_004"
	ErrCodeLexiconReloadFailed  ErrorCode = "LEX_005"
)

// Extraction Module Error Codes
const (
	ErrCodeExtractionFailed       ErrorCode = "EXT_001"
	ErrCodeExtractorNotRegistered ErrorCode = "EXT_002"
	ErrCodeSectionParseFailed     ErrorCode = "EXT_003"
	ErrCodeEnsembleEmpty          ErrorCode = "EXT_004"
	ErrCodeDocumentTooLarge       ErrorCode = "EXT_005"
)

// Vocabulary Module Error Codes
const (
	ErrCodeVocabularyUnavailable ErrorCode = "VOC_001"
	ErrCodeVocabularyLoadFailed  ErrorCode = "VOC_002"
	ErrCodeVocabularyEmpty       ErrorCode = "VOC_003"
	ErrCodeConceptNotFound       ErrorCode = "VOC_004"
	ErrCodeVocabularyIDUnknown   ErrorCode = "VOC_005"
)

// Concept Mapping Error Codes
const (
	ErrCodeMappingFailed    ErrorCode = "MAP_001"
	ErrCodeRankingInvalid   ErrorCode = "MAP_002"
	ErrCodeSimilarityFailed ErrorCode = "MAP_003"
)

// Infrastructure aliases (mapped from old names)
const (
	CodeDBConnectionError = ErrCodeDatabaseError
	CodeDBQueryError      = ErrCodeDatabaseError
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal error",
	ErrCodeInvalidInput:   "invalid input",
	ErrCodeNotFound:       "resource not found",
	ErrCodeConflict:       "resource conflict",
	ErrCodeTimeout:        "operation timed out",
	ErrCodeValidation:     "validation failed",
	ErrCodeSerialization:  "serialization failed",
	ErrCodeDatabaseError:  "database error",
	ErrCodeCacheError:     "cache error",
	ErrCodeNotImplemented: "not implemented",

	ErrCodeLexiconLoadFailed:    "failed to load trigger lexicon",
	ErrCodeLexiconFileMissing:   "lexicon file not found",
	ErrCodeLexiconEntryInvalid:  "invalid lexicon entry",
	ErrCodeLexiconDomainUnknown: "unknown clinical domain in lexicon",
	ErrCodeLexiconReloadFailed:  "lexicon reload failed",

	ErrCodeExtractionFailed:       "mention extraction failed",
	ErrCodeExtractorNotRegistered: "no extractors registered",
	ErrCodeSectionParseFailed:     "section segmentation failed",
	ErrCodeEnsembleEmpty:          "ensemble produced no output",
	ErrCodeDocumentTooLarge:       "document exceeds size limit",

	ErrCodeVocabularyUnavailable: "vocabulary index unavailable",
	ErrCodeVocabularyLoadFailed:  "failed to load vocabulary",
	ErrCodeVocabularyEmpty:       "vocabulary index is empty",
	ErrCodeConceptNotFound:       "concept not found",
	ErrCodeVocabularyIDUnknown:   "unknown vocabulary identifier",

	ErrCodeMappingFailed:    "concept mapping failed",
	ErrCodeRankingInvalid:   "candidate ranking invalid",
	ErrCodeSimilarityFailed: "similarity computation failed",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

// IsRetryable reports whether the failure class is transient and the
// operation may be retried without changing the input.
func IsRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeTimeout, ErrCodeDatabaseError, ErrCodeCacheError, ErrCodeVocabularyUnavailable:
		return true
	}
	return false
}

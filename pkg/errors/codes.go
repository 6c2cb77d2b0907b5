package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTimeout            ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_007"
	ErrCodeConfigInvalid      ErrorCode = "COMMON_008"
)

// Feature Module Error Codes
const (
	ErrCodeInvalidFeatureValue ErrorCode = "FEAT_001"
	ErrCodeFeatureDimMismatch  ErrorCode = "FEAT_002"
)

// Model Module Error Codes
const (
	ErrCodeModelError        ErrorCode = "MODEL_001"
	ErrCodeModelIncompatible ErrorCode = "MODEL_002"
	ErrCodeModelNotLoaded    ErrorCode = "MODEL_003"
	ErrCodeModelLoadFailed   ErrorCode = "MODEL_004"
	ErrCodeLabelUndecodable  ErrorCode = "MODEL_005"
)

// Corpus Module Error Codes
const (
	ErrCodeCorpusUnavailable ErrorCode = "CORPUS_001"
	ErrCodeCorpusParseFailed ErrorCode = "CORPUS_002"
	ErrCodeCorpusEmptyColumn ErrorCode = "CORPUS_003"
)

// Matcher Module Error Codes
const (
	ErrCodeMatchSearchFailed     ErrorCode = "MATCH_001"
	ErrCodeMatchThresholdInvalid ErrorCode = "MATCH_002"
)

// Aliases used at generic call sites.
const (
	CodeUnknown      = ErrCodeInternal
	CodeOK           = ErrorCode("OK")
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusBadRequest,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeConfigInvalid:      http.StatusInternalServerError,

	ErrCodeInvalidFeatureValue: http.StatusBadRequest,
	ErrCodeFeatureDimMismatch:  http.StatusBadRequest,

	ErrCodeModelError:        http.StatusInternalServerError,
	ErrCodeModelIncompatible: http.StatusInternalServerError,
	ErrCodeModelNotLoaded:    http.StatusServiceUnavailable,
	ErrCodeModelLoadFailed:   http.StatusServiceUnavailable,
	ErrCodeLabelUndecodable:  http.StatusInternalServerError,

	ErrCodeCorpusUnavailable: http.StatusServiceUnavailable,
	ErrCodeCorpusParseFailed: http.StatusInternalServerError,
	ErrCodeCorpusEmptyColumn: http.StatusInternalServerError,

	ErrCodeMatchSearchFailed:     http.StatusInternalServerError,
	ErrCodeMatchThresholdInvalid: http.StatusInternalServerError,
}

// ErrorCodeMessage provides default human-readable messages per code, used
// when a handler needs a response body but the error carries no message.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTimeout:            "operation timed out",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeConfigInvalid:      "invalid configuration",

	ErrCodeInvalidFeatureValue: "invalid feature value",
	ErrCodeFeatureDimMismatch:  "feature dimension mismatch",

	ErrCodeModelError:        "model prediction failed",
	ErrCodeModelIncompatible: "model is structurally incompatible",
	ErrCodeModelNotLoaded:    "model is not loaded",
	ErrCodeModelLoadFailed:   "model load failed",
	ErrCodeLabelUndecodable:  "label index has no decoding",

	ErrCodeCorpusUnavailable: "reference corpus unavailable",
	ErrCodeCorpusParseFailed: "reference corpus parse failed",
	ErrCodeCorpusEmptyColumn: "reference corpus missing required column",

	ErrCodeMatchSearchFailed:     "similarity search failed",
	ErrCodeMatchThresholdInvalid: "similarity threshold out of range",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
// Unknown codes map to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MessageForCode returns the default message for an ErrorCode.
func MessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

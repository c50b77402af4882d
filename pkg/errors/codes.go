package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
)

// Zodiac Module Error Codes
const (
	ErrCodeUnknownSign  ErrorCode = "ZOD_001"
	ErrCodeInvalidHouse ErrorCode = "ZOD_002"
)

// Dasha Module Error Codes
const (
	ErrCodeTilingViolation ErrorCode = "DSH_001"
	ErrCodeInvalidPeriod   ErrorCode = "DSH_002"
)

// Strength Module Error Codes
const (
	ErrCodeDegenerateCalibration ErrorCode = "STR_001"
	ErrCodeInvalidTierTable      ErrorCode = "STR_002"
	ErrCodeInvalidStrengthTable  ErrorCode = "STR_003"
)

// Configuration Error Codes
const (
	ErrCodeUnknownProfile ErrorCode = "CFG_001"
)

// Short aliases used at call sites.
const (
	CodeOK       = ErrorCode("OK")
	CodeUnknown  = ErrorCode("UNKNOWN")
	CodeInternal = ErrCodeInternal

	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeValidation   = ErrCodeValidation
	CodeCacheError   = ErrCodeCacheError

	CodeUnknownSign           = ErrCodeUnknownSign
	CodeInvalidHouse          = ErrCodeInvalidHouse
	CodeTilingViolation       = ErrCodeTilingViolation
	CodeInvalidPeriod         = ErrCodeInvalidPeriod
	CodeDegenerateCalibration = ErrCodeDegenerateCalibration
	CodeInvalidTierTable      = ErrCodeInvalidTierTable
	CodeInvalidStrengthTable  = ErrCodeInvalidStrengthTable
	CodeUnknownProfile        = ErrCodeUnknownProfile
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,

	ErrCodeUnknownSign:  http.StatusBadRequest,
	ErrCodeInvalidHouse: http.StatusBadRequest,

	ErrCodeTilingViolation: http.StatusUnprocessableEntity,
	ErrCodeInvalidPeriod:   http.StatusUnprocessableEntity,

	ErrCodeDegenerateCalibration: http.StatusInternalServerError,
	ErrCodeInvalidTierTable:      http.StatusInternalServerError,
	ErrCodeInvalidStrengthTable:  http.StatusBadRequest,

	ErrCodeUnknownProfile: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",

	ErrCodeUnknownSign:  "unknown zodiac sign",
	ErrCodeInvalidHouse: "house number out of range",

	ErrCodeTilingViolation: "period children do not tile their parent",
	ErrCodeInvalidPeriod:   "invalid period interval",

	ErrCodeDegenerateCalibration: "calibration max must be greater than min",
	ErrCodeInvalidTierTable:      "invalid tier table",
	ErrCodeInvalidStrengthTable:  "strength table must hold 12 values",

	ErrCodeUnknownProfile: "unknown scoring profile",
}

// HTTPStatus returns the HTTP status for code, defaulting to 500.
func HTTPStatus(code ErrorCode) int {
	if s, ok := ErrorCodeHTTPStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// DefaultMessage returns the default message for code.
func DefaultMessage(code ErrorCode) string {
	if m, ok := ErrorCodeMessage[code]; ok {
		return m
	}
	return "unknown error"
}

// Module returns the module prefix of a code ("ZOD", "DSH", "COMMON", ...).
func (c ErrorCode) Module() string {
	s := string(c)
	if s == "" {
		return "UNKNOWN"
	}
	if i := strings.IndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return s
}

//Personal.AI order the ending

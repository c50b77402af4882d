package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_001", ErrCodeInternal.String())
	assert.Equal(t, "ZOD_001", CodeUnknownSign.String())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInternal, 500},
		{ErrCodeBadRequest, 400},
		{ErrCodeNotFound, 404},
		{ErrCodeValidation, 422},
		{ErrCodeUnknownSign, 400},
		{ErrCodeTilingViolation, 422},
		{ErrCodeDegenerateCalibration, 500},
		{ErrCodeUnknownProfile, 400},
		{ErrorCode("UNKNOWN"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatus(tt.code), "code %s", tt.code)
	}
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, "internal server error", DefaultMessage(ErrCodeInternal))
	assert.Equal(t, "unknown zodiac sign", DefaultMessage(ErrCodeUnknownSign))
	assert.Equal(t, "unknown error", DefaultMessage(ErrorCode("UNKNOWN")))
}

func TestErrorCode_Module(t *testing.T) {
	assert.Equal(t, "COMMON", ErrCodeInternal.Module())
	assert.Equal(t, "ZOD", ErrCodeUnknownSign.Module())
	assert.Equal(t, "DSH", ErrCodeTilingViolation.Module())
	assert.Equal(t, "STR", ErrCodeDegenerateCalibration.Module())
	assert.Equal(t, "CFG", ErrCodeUnknownProfile.Module())
	assert.Equal(t, "UNKNOWN", ErrorCode("").Module())
}

func TestErrorCodeFormat_Convention(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]+_\d{3}$`)
	for code := range ErrorCodeHTTPStatus {
		assert.Regexp(t, pattern, code.String())
		_, hasMessage := ErrorCodeMessage[code]
		assert.True(t, hasMessage, "code %s has no default message", code)
	}
}

//Personal.AI order the ending

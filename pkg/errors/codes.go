package errors

import "net/http"

// ErrorCode is the typed identifier for a failure category.  Codes are
// grouped by module prefix so that dashboards and log queries can aggregate
// by subsystem without string matching on messages.
type ErrorCode string

func (c ErrorCode) String() string { return string(c) }

// Common error codes shared by every layer.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTimeout            ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeNotImplemented     ErrorCode = "COMMON_009"
)

// Intake-engine error codes.  These never escape the engine's public contract
// (the failsafe wrapper converts them into degraded results); they exist so
// that internal logging and metrics can distinguish failure classes.
const (
	// ErrCodeIntakeInvalidInput marks null/non-string/empty transcript input.
	ErrCodeIntakeInvalidInput ErrorCode = "INTAKE_001"
	// ErrCodeIntakeStrategyFailure marks a single candidate-generation
	// strategy failing on pathological input.
	ErrCodeIntakeStrategyFailure ErrorCode = "INTAKE_002"
	// ErrCodeIntakeBoundsViolation marks a value that would violate a
	// declared field invariant before correction.
	ErrCodeIntakeBoundsViolation ErrorCode = "INTAKE_003"
	// ErrCodeIntakeRulesLoad marks a rule-snapshot file that failed to load
	// or validate.
	ErrCodeIntakeRulesLoad ErrorCode = "INTAKE_004"
)

// Config error codes.
const (
	ErrCodeConfigLoad     ErrorCode = "CONFIG_001"
	ErrCodeConfigValidate ErrorCode = "CONFIG_002"
)

// Aliases kept short for call-site readability.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeValidation   = ErrCodeValidation
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// HTTPStatus maps an ErrorCode to the HTTP status the interfaces layer should
// respond with.  Unknown codes map to 500 so that a missing mapping shows up
// in monitoring rather than silently succeeding.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeIntakeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

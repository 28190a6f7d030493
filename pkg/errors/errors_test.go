package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeValidation, "unknown category hint")
	assert.Equal(t, "[COMMON_006] unknown category hint", err.Error())

	withDetail := err.WithDetail("GARDENING")
	assert.Equal(t, "[COMMON_006] unknown category hint: GARDENING", withDetail.Error())
	// WithDetail clones; the original stays untouched.
	assert.Empty(t, err.Detail)
}

func TestWrapPreservesChain(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := Wrap(cause, ErrCodeConfigLoad, "failed to read config file")

	require.NotNil(t, err)
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, cause, err.Unwrap())
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "whatever"))
}

func TestWrapUnknownCodeInheritsInner(t *testing.T) {
	inner := New(ErrCodeIntakeRulesLoad, "rules file rejected")
	outer := Wrap(inner, CodeUnknown, "startup failed")
	assert.Equal(t, ErrCodeIntakeRulesLoad, outer.Code)

	// An explicit code always wins.
	outer = Wrap(inner, ErrCodeInternal, "startup failed")
	assert.Equal(t, ErrCodeInternal, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeIntakeRulesLoad, "bad overlay")
	wrapped := fmt.Errorf("loading rules: %w", Wrap(inner, ErrCodeConfigLoad, "config stage"))

	assert.True(t, IsCode(wrapped, ErrCodeConfigLoad))
	assert.True(t, IsCode(wrapped, ErrCodeIntakeRulesLoad))
	assert.False(t, IsCode(wrapped, ErrCodeNotFound))
	assert.False(t, IsCode(nil, ErrCodeInternal))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeInternal))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeValidation, GetCode(Validation("nope")))
	assert.Equal(t, ErrCodeBadRequest,
		GetCode(fmt.Errorf("outer: %w", InvalidParam("bad"))))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeBadRequest:         http.StatusBadRequest,
		ErrCodeValidation:         http.StatusBadRequest,
		ErrCodeIntakeInvalidInput: http.StatusBadRequest,
		ErrCodeNotFound:           http.StatusNotFound,
		ErrCodeConflict:           http.StatusConflict,
		ErrCodeTimeout:            http.StatusGatewayTimeout,
		ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
		ErrCodeNotImplemented:     http.StatusNotImplemented,
		ErrCodeInternal:           http.StatusInternalServerError,
		ErrorCode("NO_SUCH_CODE"): http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, code.HTTPStatus(), string(code))
	}
}

func TestStackCaptured(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	assert.Contains(t, err.Stack, "errors_test.go")
	// Stack never leaks into the message.
	assert.NotContains(t, err.Error(), "errors_test.go")
}

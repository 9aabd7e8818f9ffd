package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		CodeInvalidParam:     http.StatusBadRequest,
		CodeTokenExpired:     http.StatusUnauthorized,
		CodeTooManyRequests:  http.StatusTooManyRequests,
		CodeLLMCallFailed:    http.StatusInternalServerError,
		CodeShopeeCallFailed: http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, New(code, "x").HTTPStatus, string(code))
	}
}

func TestAsAppError_UnwrapsChain(t *testing.T) {
	base := Invalid("Missing product name")
	wrapped := fmt.Errorf("caption: %w", base)

	require.True(t, IsAppError(wrapped))
	got := AsAppError(wrapped)
	assert.Equal(t, "Missing product name", got.Message)
	assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
}

func TestAsAppError_PlainErrorBecomesUnknown(t *testing.T) {
	got := AsAppError(stderrors.New("boom"))
	assert.Equal(t, CodeUnknown, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
}

func TestWithError_DoesNotMutatePredefined(t *testing.T) {
	cause := stderrors.New("upstream down")
	e := ErrLLMCallFailed.WithError(cause)

	assert.ErrorIs(t, e, cause)
	assert.Nil(t, ErrLLMCallFailed.Err)
}

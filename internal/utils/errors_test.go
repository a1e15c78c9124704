package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{"not found", E(CodeNotFound, "op", "missing", nil), http.StatusNotFound},
		{"conflict", E(CodeConflict, "op", "busy", nil), http.StatusConflict},
		{"rate limited", E(CodeTooManyRequests, "op", "slow down", nil), http.StatusTooManyRequests},
		{"unavailable", E(CodeUnavailable, "op", "down", nil), http.StatusServiceUnavailable},
		{"malformed", E(CodeMalformedResponse, "op", "junk", nil), http.StatusBadGateway},
		{"internal", E(CodeInternal, "op", "boom", nil), http.StatusInternalServerError},
		{"sentinel not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"plain error", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppErrorUnwrapAndCode(t *testing.T) {
	root := errors.New("dial tcp: refused")
	err := fmt.Errorf("outer: %w", E(CodeUnavailable, "Gemini.Generate", "inference service unreachable", root))

	assert.True(t, IsCode(err, CodeUnavailable))
	assert.False(t, IsCode(err, CodeMalformedResponse))
	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.ErrorIs(t, err, root)
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, "outer: Gemini.Generate: inference service unreachable: dial tcp: refused", err.Error())
}

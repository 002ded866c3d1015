package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		kind   Kind
	}{
		{"validation", Validation("bad"), http.StatusBadRequest, KindValidation},
		{"unauthenticated", Unauthenticated("who"), http.StatusUnauthorized, KindAuthentication},
		{"forbidden", Forbidden("nope"), http.StatusUnauthorized, KindAuthorization},
		{"not found", NotFound("gone"), http.StatusNotFound, KindNotFound},
		{"persistence", Persistence("disk", errors.New("full")), http.StatusInternalServerError, KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, ErrorResponse{Message: tt.err.Message}, tt.err.ToErrorResponse())
		})
	}
}

func TestMapErrorToHTTP(t *testing.T) {
	t.Run("wrapped http error is kept", func(t *testing.T) {
		src := NotFound("User not found")
		got := MapErrorToHTTP(fmt.Errorf("lookup: %w", src))
		assert.Same(t, src, got)
	})

	t.Run("unknown error hides its cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		got := MapErrorToHTTP(cause)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
		assert.Equal(t, InternalMessage, got.Message)
		assert.ErrorIs(t, got, cause)
	})
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrapped: %w", Forbidden("x")))
	assert.True(t, ok)
	assert.Equal(t, KindAuthorization, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

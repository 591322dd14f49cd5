package apperrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{"nil error", nil, ErrNotFound, false},
		{"direct sentinel", ErrNotFound, ErrNotFound, true},
		{"wrapped once", NotFound("enrollment abc"), ErrNotFound, true},
		{"wrapped twice", errors.Wrap(NotFound("payment"), "failed to refund"), ErrNotFound, true},
		{"already completed is invalid state", errors.Wrap(ErrAlreadyCompleted, "payment p1"), ErrInvalidState, true},
		{"invalid state is not already completed", InvalidState("retry"), ErrAlreadyCompleted, false},
		{"storage wrap", Storage(errors.New("connection reset"), "failed to save"), ErrStorageFailure, true},
		{"unrelated", errors.New("boom"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Is(tt.err, tt.target))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("courseId is required")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("payment")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrAlreadyCompleted))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrConcurrentModification))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Unavailable(errors.New("dial tcp"), "student lookup")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Storage(errors.New("deadlock"), "save")))
}

func TestStorage_NilPassthrough(t *testing.T) {
	assert.NoError(t, Storage(nil, "noop"))
	assert.NoError(t, Unavailable(nil, "noop"))
}

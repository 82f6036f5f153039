package zammad

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnexpectedResponse, "UnexpectedResponse"},
		{KindInvalidRequest, "InvalidRequest"},
		{KindUnimplemented, "Unimplemented"},
		{Kind(0), "Unknown"},
		{Kind(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "unexpected response",
			err:      unexpectedResponse("Unexpected response code", "200/201", "404"),
			expected: "zammad: UnexpectedResponse: Unexpected response code (expected 200/201, received 404)",
		},
		{
			name:     "invalid request",
			err:      invalidRequest("Expected integer"),
			expected: "zammad: InvalidRequest: Expected integer",
		},
		{
			name:     "unimplemented",
			err:      unimplemented("creating ticket states is not supported"),
			expected: "zammad: Unimplemented: creating ticket states is not supported",
		},
		{
			name:     "empty message",
			err:      invalidRequest(""),
			expected: "zammad: InvalidRequest: no details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := unexpectedResponse("id attribute missing", "id field", "no id field present")
	wrapped := fmt.Errorf("fetch user: %w", err)

	assert.True(t, errors.Is(wrapped, ErrUnexpectedResponse))
	assert.False(t, errors.Is(wrapped, ErrInvalidRequest))
	assert.False(t, errors.Is(wrapped, ErrUnimplemented))

	assert.True(t, IsUnexpectedResponse(wrapped))
	assert.False(t, IsInvalidRequest(wrapped))
	assert.False(t, IsUnimplemented(wrapped))

	assert.True(t, IsInvalidRequest(invalidRequest("x")))
	assert.True(t, IsUnimplemented(unimplemented("x")))
	assert.False(t, IsUnexpectedResponse(errors.New("connection refused")))

	var zerr *Error
	assert.True(t, errors.As(wrapped, &zerr))
	assert.Equal(t, "id field", zerr.Expected)
	assert.Equal(t, "no id field present", zerr.Received)
}

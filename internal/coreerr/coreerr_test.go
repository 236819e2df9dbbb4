package coreerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := BidTooLow(55000, 50000)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Contains(t, err.Error(), "BID_TOO_LOW")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := SerializationFailure(cause)
	assert.ErrorIs(t, err, cause)
}

func TestRetryable(t *testing.T) {
	assert.True(t, StaleDay(5, 6).IsRetryable())
	assert.True(t, SerializationFailure(nil).IsRetryable())
	assert.False(t, BidTooLow(1, 1).IsRetryable())
}

func TestAsTarget(t *testing.T) {
	var target *Error
	var err error = TeamNotFound("abc")
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, KindNotFound, target.Kind)
}

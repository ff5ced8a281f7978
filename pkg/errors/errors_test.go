package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_TypedError(t *testing.T) {
	t.Parallel()

	err := New(KindAuth, "invalid API key")
	assert.Equal(t, KindAuth, KindOf(err))
}

func TestKindOf_WrappedTypedError(t *testing.T) {
	t.Parallel()

	inner := New(KindServer, "backend unavailable")
	wrapped := fmt.Errorf("calling model: %w", inner)
	assert.Equal(t, KindServer, KindOf(wrapped))
}

func TestKindOf_ContextErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindCanceled, KindOf(context.Canceled))
	assert.Equal(t, KindCanceled, KindOf(context.DeadlineExceeded))
	assert.Equal(t, KindCanceled, KindOf(fmt.Errorf("run: %w", context.Canceled)))
}

func TestKindOf_MessageSniffing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"status code", errors.New("googleapi: Error 429: Resource exhausted"), KindRateLimit},
		{"rate limit phrase", errors.New("Rate limit exceeded, try again later"), KindRateLimit},
		{"quota phrase", errors.New("quota exceeded for this project"), KindRateLimit},
		{"connection", errors.New("connection refused"), KindNetwork},
		{"timeout", errors.New("request timeout while dialing"), KindNetwork},
		{"something else", errors.New("mysterious failure"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: i/o timeout")
	err := Wrap(KindNetwork, cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, KindNetwork, err.Kind)
}

func TestWrap_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(KindNetwork, nil))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(KindRateLimit))
	assert.True(t, IsRetryable(KindNetwork))
	assert.True(t, IsRetryable(KindServer))
	assert.False(t, IsRetryable(KindAuth))
	assert.False(t, IsRetryable(KindBadRequest))
	assert.False(t, IsRetryable(KindNotFound))
	assert.False(t, IsRetryable(KindCanceled))
	assert.False(t, IsRetryable(KindUnknown))
}

func TestFromStatusCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindNetwork, FromStatusCode(0))
	assert.Equal(t, KindRateLimit, FromStatusCode(429))
	assert.Equal(t, KindAuth, FromStatusCode(401))
	assert.Equal(t, KindAuth, FromStatusCode(403))
	assert.Equal(t, KindNotFound, FromStatusCode(404))
	assert.Equal(t, KindServer, FromStatusCode(500))
	assert.Equal(t, KindServer, FromStatusCode(503))
	assert.Equal(t, KindBadRequest, FromStatusCode(400))
	assert.Equal(t, KindUnknown, FromStatusCode(200))
}

func TestKind_Valid(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds {
		assert.True(t, k.Valid(), "kind %q should be valid", k)
	}
	assert.False(t, Kind("bogus").Valid())
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	withCode := &Error{Kind: KindRateLimit, Message: "slow down", Code: 429}
	assert.Equal(t, "rate_limit error (code 429): slow down", withCode.Error())

	withoutCode := &Error{Kind: KindUnknown, Message: "boom"}
	assert.Equal(t, "unknown error: boom", withoutCode.Error())
}

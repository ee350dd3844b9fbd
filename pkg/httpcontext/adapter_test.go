package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestAttach_MintsAndEchoesRequestID(t *testing.T) {
	a := NewAdapter(time.Second)
	var ctx fasthttp.RequestCtx

	stdCtx, cancel := a.Attach(&ctx)
	defer cancel()

	echoed := string(ctx.Response.Header.Peek("X-Request-ID"))
	require.NotEmpty(t, echoed)

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
}

func TestAttach_HonorsCallerRequestID(t *testing.T) {
	a := NewAdapter(time.Second)
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("X-Request-ID", "caller-7")

	_, cancel := a.Attach(&ctx)
	defer cancel()

	assert.Equal(t, "caller-7", string(ctx.Response.Header.Peek("X-Request-ID")))
}

func TestNewAdapter_DefaultsNonPositiveTimeout(t *testing.T) {
	a := NewAdapter(0)
	var ctx fasthttp.RequestCtx

	stdCtx, cancel := a.Attach(&ctx)
	defer cancel()

	_, ok := stdCtx.Deadline()
	assert.True(t, ok)
}

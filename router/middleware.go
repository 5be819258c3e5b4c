package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remiges-tech/checkwriter/metrics"
	"github.com/remiges-tech/checkwriter/wscutils"
)

// Context keys set by Recover and Timeout and read by LogRequest.
const (
	CtxKeyTimedOut           = "_request_timed_out"
	CtxKeyClientDisconnected = "_client_disconnected"
	CtxKeyPanicRecovered     = "_panic_recovered"
	CtxKeyPanicValue         = "_panic_value"
	CtxKeyPanicStack         = "_panic_stack"
)

// Recover turns a handler panic into a 500 response carrying the internal
// error code. The panic value and stack go to LogRequest, not to stderr.
func Recover() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, p any) {
		c.Set(CtxKeyPanicRecovered, true)
		c.Set(CtxKeyPanicValue, fmt.Sprintf("%v", p))
		c.Set(CtxKeyPanicStack, string(debug.Stack()))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			wscutils.NewErrorResponse(wscutils.MsgID(wscutils.ErrcodeInternal), wscutils.ErrcodeInternal))
	})
}

// Timeout puts a deadline on the request context. Handlers see it through
// c.Request.Context() and the store calls they make; once the handler returns,
// the cause of a cancelled context is recorded for LogRequest.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		switch err := ctx.Err(); {
		case errors.Is(err, context.DeadlineExceeded):
			c.Set(CtxKeyTimedOut, true)
		case errors.Is(err, context.Canceled):
			c.Set(CtxKeyClientDisconnected, true)
		}
	}
}

// RecordRequest counts each request and observes its latency, labelled by
// the matched route rather than the raw path so ids do not create series.
func RecordRequest(m metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.RecordWithLabels(MetricRequests, 1, method, path, strconv.Itoa(c.Writer.Status()))
		m.RecordWithLabels(MetricRequestDuration, time.Since(start).Seconds(), method, path)
	}
}

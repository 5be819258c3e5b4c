package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"
)

// RequestInfo is what LogRequest knows about a finished request.
// Path is the raw URL path; Route is the pattern it matched, empty for 404s.
type RequestInfo struct {
	Method       string
	Path         string
	Route        string
	Query        string
	ClientIP     string
	UserAgent    string
	TraceID      string
	Status       int
	Start        time.Time // UTC
	Elapsed      time.Duration
	BytesIn      int64
	BytesOut     int64
	TimedOut     bool
	Disconnected bool
	Panic        *PanicInfo
}

// PanicInfo describes a handler panic caught by Recover.
type PanicInfo struct {
	Value string
	Stack string
}

// RequestLogger receives one RequestInfo per request.
type RequestLogger interface {
	Log(info RequestInfo)
}

// LogRequest hands a RequestInfo to logger once every later handler has
// returned. Register it first, so that what Recover and Timeout record on the
// context is visible here.
func LogRequest(logger RequestLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		bytesIn := c.Request.ContentLength

		c.Next()

		info := RequestInfo{
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			Route:        c.FullPath(),
			Query:        c.Request.URL.RawQuery,
			ClientIP:     c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			TraceID:      c.GetHeader("X-Trace-ID"),
			Status:       c.Writer.Status(),
			Start:        start.UTC(),
			Elapsed:      time.Since(start),
			BytesIn:      bytesIn,
			BytesOut:     int64(c.Writer.Size()),
			TimedOut:     c.GetBool(CtxKeyTimedOut),
			Disconnected: c.GetBool(CtxKeyClientDisconnected),
		}
		if c.GetBool(CtxKeyPanicRecovered) {
			info.Panic = &PanicInfo{
				Value: c.GetString(CtxKeyPanicValue),
				Stack: c.GetString(CtxKeyPanicStack),
			}
		}
		logger.Log(info)
	}
}

// LogHarbourAdapter writes RequestInfo as logharbour activity entries in
// the "http" module.
type LogHarbourAdapter struct {
	logger *logharbour.Logger
}

func NewLogHarbourAdapter(logger *logharbour.Logger) *LogHarbourAdapter {
	return &LogHarbourAdapter{logger: logger.WithModule("http").WithOp("request")}
}

// Log writes one activity entry: Info for completed requests, Warn for
// requests whose handler panicked.
func (a *LogHarbourAdapter) Log(info RequestInfo) {
	l := a.logger.
		WithRemoteIP(info.ClientIP).
		WithClass(info.Method).
		WithInstanceId(info.Path).
		WithStatus(requestStatus(info.Status))

	data := map[string]any{
		"route":      info.Route,
		"status":     info.Status,
		"start":      info.Start.Format(time.RFC3339Nano),
		"elapsed_ms": info.Elapsed.Milliseconds(),
		"bytes_in":   info.BytesIn,
		"bytes_out":  info.BytesOut,
	}
	if info.Query != "" {
		data["query"] = info.Query
	}
	if info.UserAgent != "" {
		data["user_agent"] = info.UserAgent
	}
	if info.TraceID != "" {
		data["trace_id"] = info.TraceID
	}
	if info.TimedOut {
		data["timed_out"] = true
	}
	if info.Disconnected {
		data["client_disconnected"] = true
	}

	if info.Panic != nil {
		data["panic"] = info.Panic.Value
		data["stack"] = info.Panic.Stack
		l.Warn().LogActivity("Handler panicked", data)
		return
	}
	l.Info().LogActivity("Request served", data)
}

// requestStatus counts 2xx and 3xx responses as successes.
func requestStatus(code int) logharbour.Status {
	if code >= 200 && code < 400 {
		return logharbour.Success
	}
	return logharbour.Failure
}

package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/checkwriter/logger"
	"github.com/remiges-tech/checkwriter/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingLogger struct {
	mu    sync.Mutex
	infos []RequestInfo
}

func (r *recordingLogger) Log(info RequestInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, info)
}

func (r *recordingLogger) last(t *testing.T) RequestInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.infos)
	return r.infos[len(r.infos)-1]
}

func newTestRouter(t *testing.T) (*gin.Engine, *metrics.PrometheusMetrics, *bytes.Buffer) {
	var buf bytes.Buffer
	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry())
	r, err := NewGinRouter(logger.LoadLogger("checkwriter-test", &buf, logharbour.Info), m, time.Second)
	require.NoError(t, err)
	return r, m, &buf
}

func scrape(t *testing.T, m *metrics.PrometheusMetrics) string {
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewGinRouter(t *testing.T) {
	r, m, buf := newTestRouter(t)
	r.GET("/checks/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checks/abc?x=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "Request served")
	assert.Contains(t, buf.String(), "/checks/abc")

	body := scrape(t, m)
	assert.Contains(t, body, `checkwriter_http_requests_total{method="GET",path="/checks/:id",status="200"} 1`)
	assert.Contains(t, body, `checkwriter_http_request_duration_seconds_count{method="GET",path="/checks/:id"} 1`)
	assert.Contains(t, body, `checkwriter_http_request_duration_seconds_bucket{method="GET",path="/checks/:id",le="0.0005"}`)
}

func TestNewGinRouterCountsPanics(t *testing.T) {
	r, m, buf := newTestRouter(t)
	r.GET("/boom", func(c *gin.Context) {
		panic("out of ink")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "Handler panicked")
	assert.Contains(t, buf.String(), "out of ink")

	body := scrape(t, m)
	assert.Contains(t, body, `checkwriter_http_requests_total{method="GET",path="/boom",status="500"} 1`)
	assert.Contains(t, body, `checkwriter_http_request_duration_seconds_count{method="GET",path="/boom"} 1`)
}

func TestNewGinRouterUnmatched(t *testing.T) {
	r, m, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, scrape(t, m), `checkwriter_http_requests_total{method="GET",path="unmatched",status="404"} 1`)
}

func TestNewGinRouterRegisterTwice(t *testing.T) {
	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry())
	l := logger.LoadLogger("checkwriter-test", &bytes.Buffer{}, logharbour.Info)

	_, err := NewGinRouter(l, m, 0)
	require.NoError(t, err)
	_, err = NewGinRouter(l, m, 0)
	assert.Error(t, err)
}

func TestRecover(t *testing.T) {
	rec := &recordingLogger{}
	r := gin.New()
	r.Use(LogRequest(rec), Recover())
	r.GET("/boom", func(c *gin.Context) {
		panic("printer on fire")
	})
	r.GET("/calm", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","data":null,"messages":[{"msgid":1100,"errcode":"internal"}]}`, w.Body.String())

	info := rec.last(t)
	require.NotNil(t, info.Panic)
	assert.Equal(t, "printer on fire", info.Panic.Value)
	assert.Contains(t, info.Panic.Stack, "TestRecover")
	assert.Equal(t, http.StatusInternalServerError, info.Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calm", nil))
	assert.Nil(t, rec.last(t).Panic)
}

func TestLogHarbourAdapterPanic(t *testing.T) {
	var buf bytes.Buffer
	a := NewLogHarbourAdapter(logger.LoadLogger("checkwriter-test", &buf, logharbour.Info))

	a.Log(RequestInfo{
		Method: http.MethodGet,
		Path:   "/boom",
		Status: http.StatusInternalServerError,
		Panic:  &PanicInfo{Value: "printer on fire", Stack: "goroutine 1 [running]"},
	})

	assert.Contains(t, buf.String(), "Handler panicked")
	assert.Contains(t, buf.String(), "printer on fire")
	assert.Contains(t, buf.String(), "goroutine 1 [running]")
}

func TestTimeout(t *testing.T) {
	rec := &recordingLogger{}
	r := gin.New()
	r.Use(LogRequest(rec), Timeout(10*time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		c.Status(http.StatusGatewayTimeout)
	})
	r.GET("/fast", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.True(t, rec.last(t).TimedOut)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	info := rec.last(t)
	assert.False(t, info.TimedOut)
	assert.Equal(t, "/fast", info.Route)
}

func TestLogRequest(t *testing.T) {
	rec := &recordingLogger{}
	r := gin.New()
	r.Use(LogRequest(rec))
	r.POST("/amount", func(c *gin.Context) {
		c.String(http.StatusBadRequest, "nope")
	})

	req := httptest.NewRequest(http.MethodPost, "/amount?v=2", bytes.NewBufferString(`{"data":{}}`))
	req.Header.Set("X-Trace-ID", "trace-1")
	req.Header.Set("User-Agent", "checkwriter-test")
	r.ServeHTTP(httptest.NewRecorder(), req)

	info := rec.last(t)
	assert.Equal(t, http.MethodPost, info.Method)
	assert.Equal(t, "/amount", info.Path)
	assert.Equal(t, "v=2", info.Query)
	assert.Equal(t, http.StatusBadRequest, info.Status)
	assert.Equal(t, int64(11), info.BytesIn)
	assert.Equal(t, int64(4), info.BytesOut)
	assert.Equal(t, "trace-1", info.TraceID)
	assert.Equal(t, "checkwriter-test", info.UserAgent)
	assert.Equal(t, time.UTC, info.Start.Location())
}

func TestRequestStatus(t *testing.T) {
	assert.Equal(t, logharbour.Success, requestStatus(http.StatusOK))
	assert.Equal(t, logharbour.Success, requestStatus(http.StatusFound))
	assert.Equal(t, logharbour.Failure, requestStatus(http.StatusNotFound))
	assert.Equal(t, logharbour.Failure, requestStatus(http.StatusInternalServerError))
}

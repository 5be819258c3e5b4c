// Package checks is the HTTP surface of checkwriter: spelling numbers,
// parsing amounts and keeping composed checks as drafts.
package checks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/checkwriter/metrics"
	"github.com/remiges-tech/checkwriter/numwords"
	"github.com/remiges-tech/checkwriter/service"
	"github.com/remiges-tech/checkwriter/wscutils"
)

// DepDrafts is the service dependency key of the *store.Drafts used by the draft handlers.
const DepDrafts = "drafts"

// Metric names recorded by the handlers.
const (
	MetricConversions = "checkwriter_numwords_conversions_total"
	MetricDrafts      = "checkwriter_drafts_total"
	MetricWordsLength = "checkwriter_numwords_length_bytes"
)

// lengthBuckets cover spelled lengths up to numwords.MaxLen.
var lengthBuckets = []float64{10, 20, 40, 60, 80, 100, numwords.MaxLen}

// Outcome label values.
const (
	outcomeOK       = "ok"
	outcomeOverflow = "overflow"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// RegisterMetrics registers the metrics recorded by the handlers on m.
func RegisterMetrics(m metrics.Metrics) error {
	if err := m.RegisterWithLabels(MetricConversions, metrics.Counter, "Numbers spelled by /numwords and /amount", []string{"outcome"}); err != nil {
		return err
	}
	if err := m.RegisterWithLabels(MetricDrafts, metrics.Counter, "Draft store operations", []string{"op", "outcome"}); err != nil {
		return err
	}
	metrics.SetBuckets(m, MetricWordsLength, lengthBuckets)
	return m.Register(MetricWordsLength, metrics.Histogram, "Length in bytes of numbers spelled by /numwords")
}

type route struct {
	method, path string
	handler      service.HandlerFunc
}

// RegisterHandlers mounts the checkwriter routes on s. Draft routes live
// under the /checks group.
func RegisterHandlers(s *service.Service) error {
	for _, r := range []route{
		{http.MethodPost, "/numwords", HandleNumWords},
		{http.MethodPost, "/amount", HandleAmount},
	} {
		if err := s.RegisterRoute(r.method, r.path, r.handler); err != nil {
			return err
		}
	}

	g := s.CreateGroup("/checks")
	for _, r := range []route{
		{http.MethodPost, "", HandleCreateDraft},
		{http.MethodGet, "/template", HandleTemplate},
		{http.MethodGet, "/:id", HandleGetDraft},
		{http.MethodDelete, "/:id", HandleDeleteDraft},
	} {
		if err := g.RegisterRoute(r.method, r.path, r.handler); err != nil {
			return err
		}
	}
	return nil
}

// getVals reports the limit a field failed against, for tags that have one.
func getVals(err validator.FieldError) []string {
	if err.Param() == "" {
		return nil
	}
	return []string{err.Param()}
}

func opLogger(s *service.Service, op string) *logharbour.Logger {
	return s.Logger.WithModule("checks").WithOp(op)
}

func record(s *service.Service, name string, labelValues ...string) {
	if s.Metrics != nil {
		s.Metrics.RecordWithLabels(name, 1, labelValues...)
	}
}

func observe(s *service.Service, name string, value float64) {
	if s.Metrics != nil {
		s.Metrics.Record(name, value)
	}
}

func sendValidationErrors(c *gin.Context, msgs []wscutils.ErrorMessage) {
	wscutils.SendErrorResponse(c, wscutils.NewResponse(wscutils.ErrorStatus, nil, msgs))
}

func sendInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, wscutils.NewErrorResponse(wscutils.MsgID(wscutils.ErrcodeInternal), wscutils.ErrcodeInternal))
}

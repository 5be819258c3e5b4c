package checks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remiges-tech/checkwriter/amount"
	"github.com/remiges-tech/checkwriter/check"
	"github.com/remiges-tech/checkwriter/service"
	"github.com/remiges-tech/checkwriter/store"
	"github.com/remiges-tech/checkwriter/wscutils"
)

type DraftResponse struct {
	ID        string     `json:"id,omitempty"`
	Mode      string     `json:"mode"`
	Printable bool       `json:"printable"`
	Check     check.Data `json:"check"`
}

type DeleteResponse struct {
	ID string `json:"id"`
}

func drafts(c *gin.Context, s *service.Service) (*store.Drafts, bool) {
	d, ok := s.Dependencies[DepDrafts].(*store.Drafts)
	if !ok {
		opLogger(s, "drafts").Error(errors.New("draft store not configured")).LogActivity("Missing dependency", map[string]any{"key": DepDrafts})
		sendInternalError(c)
	}
	return d, ok
}

// parseMode reads the mode query parameter, sending the error response itself
// when it is not a known mode.
func parseMode(c *gin.Context, fallback string) (check.Mode, bool) {
	value := c.DefaultQuery("mode", fallback)
	mode, err := check.ParseMode(value)
	if err != nil {
		sendValidationErrors(c, []wscutils.ErrorMessage{wscutils.ErrorMessageFor(wscutils.ErrcodeInvalidMode, "mode", value)})
		return mode, false
	}
	return mode, true
}

// HandleCreateDraft composes a check from the draft in the request and stores it.
func HandleCreateDraft(c *gin.Context, s *service.Service) {
	lh := opLogger(s, "create")

	// step 1: bind request body to struct
	var draft check.Draft
	if err := wscutils.BindJSON(c, &draft); err != nil {
		lh.Debug0().LogActivity("Invalid request body", map[string]any{"error": err.Error()})
		return
	}

	// step 2: validate request body
	if validationErrors := wscutils.WscValidate(draft, getVals); len(validationErrors) > 0 {
		sendValidationErrors(c, validationErrors)
		return
	}

	// step 3: compose the check
	a, err := amount.Parse(draft.Amount)
	if err != nil {
		record(s, MetricConversions, outcomeInvalid)
		sendValidationErrors(c, []wscutils.ErrorMessage{amountError(err, draft.Amount)})
		return
	}
	data, err := check.ComposeAmount(draft, a)
	if err != nil {
		lh.Error(err).LogActivity("Error composing check", map[string]any{"amount": draft.Amount})
		sendInternalError(c)
		return
	}

	// step 4: store the draft
	d, ok := drafts(c, s)
	if !ok {
		return
	}
	id, err := d.Save(c.Request.Context(), data)
	if err != nil {
		record(s, MetricDrafts, "save", outcomeError)
		sendInternalError(c)
		return
	}
	record(s, MetricDrafts, "save", outcomeOK)
	lh.Info().LogActivity("Draft created", map[string]any{"id": id})

	// step 5: send success response
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(DraftResponse{
		ID:        id,
		Mode:      check.Write.String(),
		Printable: check.Write.Printable(),
		Check:     data,
	}))
}

// HandleGetDraft returns a stored draft as it is drawn in the requested mode.
func HandleGetDraft(c *gin.Context, s *service.Service) {
	id := c.Param("id")

	mode, ok := parseMode(c, check.Write.String())
	if !ok {
		return
	}
	d, ok := drafts(c, s)
	if !ok {
		return
	}

	data, err := d.Get(c.Request.Context(), id)
	if err != nil {
		sendDraftError(c, s, "get", id, err)
		return
	}
	record(s, MetricDrafts, "get", outcomeOK)

	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(DraftResponse{
		ID:        id,
		Mode:      mode.String(),
		Printable: mode.Printable(),
		Check:     mode.Data(data),
	}))
}

// HandleDeleteDraft discards a stored draft.
func HandleDeleteDraft(c *gin.Context, s *service.Service) {
	id := c.Param("id")

	d, ok := drafts(c, s)
	if !ok {
		return
	}
	if err := d.Delete(c.Request.Context(), id); err != nil {
		sendDraftError(c, s, "delete", id, err)
		return
	}
	record(s, MetricDrafts, "delete", outcomeOK)
	opLogger(s, "delete").Info().LogActivity("Draft deleted", map[string]any{"id": id})

	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(DeleteResponse{ID: id}))
}

// HandleTemplate returns the sample data drawn on a blank template.
func HandleTemplate(c *gin.Context, s *service.Service) {
	mode, ok := parseMode(c, check.Template.String())
	if !ok {
		return
	}
	if !mode.IsTemplate() {
		sendValidationErrors(c, []wscutils.ErrorMessage{wscutils.ErrorMessageFor(wscutils.ErrcodeInvalidMode, "mode", mode.String())})
		return
	}

	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(DraftResponse{
		Mode:      mode.String(),
		Printable: mode.Printable(),
		Check:     mode.Data(check.Data{}),
	}))
}

func sendDraftError(c *gin.Context, s *service.Service, op, id string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		record(s, MetricDrafts, op, outcomeNotFound)
		c.JSON(http.StatusNotFound, wscutils.NewResponse(wscutils.ErrorStatus, nil, []wscutils.ErrorMessage{
			wscutils.ErrorMessageFor(wscutils.ErrcodeNotFound, "id", id),
		}))
		return
	}
	record(s, MetricDrafts, op, outcomeError)
	sendInternalError(c)
}

package checks

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/remiges-tech/checkwriter/amount"
	"github.com/remiges-tech/checkwriter/service"
	"github.com/remiges-tech/checkwriter/wscutils"
)

type AmountRequest struct {
	Amount string `json:"amount" validate:"required,max=32"`
}

type AmountResponse struct {
	Dollars uint32 `json:"dollars"`
	Cents   uint8  `json:"cents"`
	Amount  string `json:"amount"`
	Words   string `json:"amount_in_words"`
}

// HandleAmount parses an amount and returns the figure and the amount line
// as they are printed on a check.
func HandleAmount(c *gin.Context, s *service.Service) {
	lh := opLogger(s, "amount")

	var req AmountRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		lh.Debug0().LogActivity("Invalid request body", map[string]any{"error": err.Error()})
		return
	}

	if validationErrors := wscutils.WscValidate(req, getVals); len(validationErrors) > 0 {
		sendValidationErrors(c, validationErrors)
		return
	}

	a, err := amount.Parse(req.Amount)
	if err != nil {
		record(s, MetricConversions, outcomeInvalid)
		sendValidationErrors(c, []wscutils.ErrorMessage{amountError(err, req.Amount)})
		return
	}

	words, err := a.Words()
	if err != nil {
		record(s, MetricConversions, outcomeError)
		lh.Error(err).LogActivity("Error spelling amount", map[string]any{"amount": req.Amount})
		sendInternalError(c)
		return
	}

	record(s, MetricConversions, outcomeOK)
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(AmountResponse{
		Dollars: a.Dollars,
		Cents:   a.Cents,
		Amount:  a.String(),
		Words:   words,
	}))
}

// amountError maps an amount parsing error to the message for the amount field.
func amountError(err error, value string) wscutils.ErrorMessage {
	errcode := wscutils.ErrcodeInvalidAmount
	switch {
	case errors.Is(err, amount.ErrNegative):
		errcode = wscutils.ErrcodeAmountNegative
	case errors.Is(err, amount.ErrPrecision):
		errcode = wscutils.ErrcodeAmountPrecision
	case errors.Is(err, amount.ErrTooLarge):
		errcode = wscutils.ErrcodeAmountTooLarge
	}
	return wscutils.ErrorMessageFor(errcode, "amount", value)
}

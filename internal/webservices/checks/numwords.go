package checks

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/remiges-tech/checkwriter/numwords"
	"github.com/remiges-tech/checkwriter/service"
	"github.com/remiges-tech/checkwriter/wscutils"
)

type NumWordsRequest struct {
	Number   *int64 `json:"number" validate:"required,gte=0,lte=4294967295"`
	Capacity *int   `json:"capacity" validate:"omitempty,gte=1,lte=1024"`
}

type NumWordsResponse struct {
	Number uint32 `json:"number"`
	Words  string `json:"words"`
	Length int    `json:"length"`
}

// HandleNumWords spells a number into a buffer of the requested capacity,
// numwords.MaxLen bytes when none is given. A capacity too small for the
// words is reported as an overflow with the bytes needed and available.
func HandleNumWords(c *gin.Context, s *service.Service) {
	lh := opLogger(s, "numwords")

	// step 1: bind request body to struct
	var req NumWordsRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		lh.Debug0().LogActivity("Invalid request body", map[string]any{"error": err.Error()})
		return
	}

	// step 2: validate request body
	if validationErrors := wscutils.WscValidate(req, getVals); len(validationErrors) > 0 {
		record(s, MetricConversions, outcomeInvalid)
		sendValidationErrors(c, validationErrors)
		return
	}

	// step 3: process the request
	capacity := numwords.MaxLen
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	number := uint32(*req.Number)
	buf := make([]byte, capacity)

	n, err := numwords.Convert(buf, number)
	var overflow *numwords.OverflowError
	switch {
	case errors.As(err, &overflow):
		record(s, MetricConversions, outcomeOverflow)
		lh.Info().LogActivity("Buffer too small", map[string]any{"number": number, "need": overflow.Need, "capacity": overflow.Capacity})
		sendValidationErrors(c, []wscutils.ErrorMessage{
			wscutils.ErrorMessageFor(wscutils.ErrcodeOverflow, "capacity", strconv.Itoa(overflow.Need), strconv.Itoa(overflow.Capacity)),
		})
		return
	case err != nil:
		record(s, MetricConversions, outcomeError)
		lh.Error(err).LogActivity("Error converting number", map[string]any{"number": number})
		sendInternalError(c)
		return
	}

	// step 4: send success response
	record(s, MetricConversions, outcomeOK)
	observe(s, MetricWordsLength, float64(n))
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(NumWordsResponse{
		Number: number,
		Words:  string(buf[:n]),
		Length: n,
	}))
}

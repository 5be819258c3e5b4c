package wscutils

// Response status values.
const (
	SuccessStatus = "success"
	ErrorStatus   = "error"
)

// Error codes used across the web services. Message ids for them come from
// the error catalog (see LoadErrorTypes).
const (
	ErrcodeUnknown         = "unknown"
	ErrcodeInvalidJson     = "invalid_json"
	ErrcodeInternal        = "internal"
	ErrcodeNotFound        = "not_found"
	ErrcodeInvalidAmount   = "invalid_amount"
	ErrcodeAmountNegative  = "amount_negative"
	ErrcodeAmountPrecision = "amount_precision"
	ErrcodeAmountTooLarge  = "amount_too_large"
	ErrcodeOverflow        = "overflow"
	ErrcodeInvalidMode     = "invalid_mode"
)

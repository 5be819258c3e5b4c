// Package check composes the data printed on a bank check from what the user
// typed: payee, amount, date and memo. It does not lay anything out; a
// renderer receives a Data value and decides where each field goes.
package check

import (
	"fmt"
	"strings"

	"github.com/remiges-tech/checkwriter/amount"
)

// Placeholder widths, in characters, of the sample data shown on a blank template.
const (
	SamplePayeeLen  = 44
	SampleAmountLen = 10
	SampleWordsLen  = 52
	SampleMemoLen   = 26
)

const (
	// DateLayout is the layout of the date field.
	DateLayout = "01/02/2006"
	// SampleDate is shown in place of a date on a blank template.
	SampleDate = "MM/DD/YYYY"
)

// Draft is a check as entered by the user.
type Draft struct {
	Date   string `json:"date" validate:"required,datetime=01/02/2006"`
	Payee  string `json:"payee" validate:"required,max=128"`
	Amount string `json:"amount" validate:"required,max=32"`
	Memo   string `json:"memo" validate:"max=128"`
}

// Data holds the text of every field on the face of a check.
type Data struct {
	Date          string `json:"date"`
	Payee         string `json:"payee"`
	Amount        string `json:"amount"`
	AmountInWords string `json:"amount_in_words"`
	Memo          string `json:"memo"`
}

// Compose turns a draft into check data. The draft is expected to have
// passed validation; Compose only reports amount errors.
func Compose(d Draft) (Data, error) {
	a, err := amount.Parse(d.Amount)
	if err != nil {
		return Data{}, err
	}
	return ComposeAmount(d, a)
}

// ComposeAmount is Compose with an already parsed amount.
func ComposeAmount(d Draft, a amount.Amount) (Data, error) {
	words, err := a.Words()
	if err != nil {
		return Data{}, fmt.Errorf("check: amount line: %w", err)
	}

	return Data{
		Date:          strings.TrimSpace(d.Date),
		Payee:         strings.TrimSpace(d.Payee),
		Amount:        a.String(),
		AmountInWords: words,
		Memo:          strings.TrimSpace(d.Memo),
	}, nil
}

// Sample returns the placeholder data drawn on a blank template so the user
// can line the fields up with pre-printed check stock.
func Sample() Data {
	return Data{
		Date:          SampleDate,
		Payee:         strings.Repeat("X", SamplePayeeLen),
		Amount:        strings.Repeat("X", SampleAmountLen),
		AmountInWords: strings.Repeat("X", SampleWordsLen),
		Memo:          strings.Repeat("X", SampleMemoLen),
	}
}

// Package amount parses the dollar amount a user types on a check and
// produces the two forms printed on it: the grouped figure ("1,234.05") and
// the amount line ("One thousand two hundred thirty-four and 05/100").
package amount

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/remiges-tech/checkwriter/numwords"
)

// WordsBufLen is the size of the buffer the amount line is spelled into.
const WordsBufLen = 256

var (
	ErrEmpty     = errors.New("amount: empty")
	ErrSyntax    = errors.New("amount: not a dollar amount")
	ErrNegative  = errors.New("amount: negative")
	ErrPrecision = errors.New("amount: more than two decimal places")
	ErrTooLarge  = errors.New("amount: dollars exceed 4,294,967,295")
	ErrCents     = errors.New("amount: cents must be below 100")
)

// amountPattern accepts an optional dollar sign, digits grouped by commas in
// threes or not grouped at all, and an optional fractional part.
var amountPattern = regexp.MustCompile(`^\$?\s*(?:[0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)(?:\.[0-9]*)?$`)

var (
	hundred    = decimal.NewFromInt(100)
	maxDollars = decimal.NewFromInt(math.MaxUint32)
)

// Amount is a check amount split the way it is written: whole dollars and cents.
type Amount struct {
	Dollars uint32 `json:"dollars"`
	Cents   uint8  `json:"cents"`
}

// New returns the amount dollars.cents.
func New(dollars uint32, cents uint8) (Amount, error) {
	if cents >= 100 {
		return Amount{}, ErrCents
	}
	return Amount{Dollars: dollars, Cents: cents}, nil
}

// Parse reads an amount such as "1,234.56", "$1234.5" or "12".
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrEmpty
	}
	if strings.HasPrefix(s, "-") {
		return Amount{}, ErrNegative
	}
	if !amountPattern.MatchString(s) {
		return Amount{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	plain := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	plain = strings.TrimSuffix(plain, ".")

	d, err := decimal.NewFromString(plain)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return FromDecimal(d)
}

// FromDecimal converts d into an Amount. d must be non-negative, carry at
// most two significant decimal places and have at most MaxUint32 dollars.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Amount{}, ErrNegative
	}
	if !d.Equal(d.Round(2)) {
		return Amount{}, ErrPrecision
	}

	whole := d.Truncate(0)
	if whole.GreaterThan(maxDollars) {
		return Amount{}, ErrTooLarge
	}
	cents := d.Sub(whole).Mul(hundred).IntPart()

	return Amount{Dollars: uint32(whole.IntPart()), Cents: uint8(cents)}, nil
}

// Decimal returns the amount as a decimal number of dollars.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a.Dollars)*100+int64(a.Cents), -2)
}

// String formats the amount with grouped dollars and two-digit cents.
func (a Amount) String() string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("%d", a.Dollars) + fmt.Sprintf(".%02d", a.Cents)
}

// Words returns the amount line: the dollars in words with the first letter
// capitalised, followed by the cents as a fraction of 100.
func (a Amount) Words() (string, error) {
	var buf [WordsBufLen]byte

	n, err := numwords.Convert(buf[:], a.Dollars)
	if err != nil {
		return "", fmt.Errorf("amount: spelling %d: %w", a.Dollars, err)
	}
	if c := buf[0]; c >= 'a' && c <= 'z' {
		buf[0] = c - ('a' - 'A')
	}

	return fmt.Sprintf("%s and %02d/100", buf[:n], a.Cents), nil
}

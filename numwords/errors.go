package numwords

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when the destination buffer is nil or empty.
	ErrInvalidArgument = errors.New("numwords: destination buffer is empty")

	// ErrOverflow is matched by every *OverflowError.
	ErrOverflow = errors.New("numwords: destination buffer too small")
)

// OverflowError reports a number whose words do not fit in the destination buffer.
type OverflowError struct {
	Number   uint32
	Need     int
	Capacity int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("numwords: %d needs %d bytes, buffer holds %d", e.Number, e.Need, e.Capacity)
}

func (e *OverflowError) Unwrap() error {
	return ErrOverflow
}

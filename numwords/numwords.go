// Package numwords spells unsigned 32-bit integers as English cardinal words,
// the form used on the amount line of a bank check.
//
// 1234567 is written as
//
//	one million two hundred thirty-four thousand five hundred sixty-seven
//
// Words are lowercase ASCII. Tens and ones are joined by a hyphen, every other
// join is a single space. Capitalisation is left to the caller.
//
// The conversion writes into a caller-owned buffer and never allocates, so it
// is safe to call concurrently on distinct buffers.
package numwords

// MaxLen is the length in bytes of the longest expansion of any uint32
// (3373373373). A buffer of MaxLen bytes never overflows.
const MaxLen = 114

// units holds the words for 0 to 19.
var units = [20]string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen",
	"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

// tens holds the words for multiples of ten. Indexes 0 and 1 are never used
// because numbers below 20 come from units.
var tens = [10]string{
	"", "ten", "twenty", "thirty", "forty",
	"fifty", "sixty", "seventy", "eighty", "ninety",
}

// scales holds the words for powers of one thousand up to the uint32 range.
var scales = [4]string{"", "thousand", "million", "billion"}

// Convert writes the English words for number into dst and returns the number
// of bytes written, starting at dst[0]. No terminator is written.
//
// It returns ErrInvalidArgument when dst is nil or empty. When the words do not
// fit in len(dst) it returns an *OverflowError (matching ErrOverflow) and leaves
// dst untouched.
func Convert(dst []byte, number uint32) (int, error) {
	if len(dst) == 0 {
		return 0, ErrInvalidArgument
	}

	need := Len(number)
	if need > len(dst) {
		return 0, &OverflowError{Number: number, Need: need, Capacity: len(dst)}
	}

	w := writer{buf: dst}
	spell(&w, number)
	return w.n, nil
}

// Len returns the number of bytes Convert needs for number.
func Len(number uint32) int {
	var w writer
	spell(&w, number)
	return w.n
}

// Append appends the words for number to dst and returns the extended slice.
func Append(dst []byte, number uint32) []byte {
	var buf [MaxLen]byte
	n, _ := Convert(buf[:], number)
	return append(dst, buf[:n]...)
}

// String returns the words for number.
func String(number uint32) string {
	var buf [MaxLen]byte
	n, _ := Convert(buf[:], number)
	return string(buf[:n])
}

// writer is the output cursor shared by one conversion's recursive descent.
// With a nil buf it only counts.
type writer struct {
	buf []byte
	n   int
}

func (w *writer) put(s string) {
	if w.buf != nil {
		copy(w.buf[w.n:], s)
	}
	w.n += len(s)
}

// spell emits number one magnitude band at a time.
func spell(w *writer, number uint32) {
	switch {
	case number < 20:
		w.put(units[number])

	case number < 100:
		w.put(tens[number/10])
		if rem := number % 10; rem != 0 {
			w.put("-")
			w.put(units[rem])
		}

	case number < 1000:
		w.put(units[number/100])
		w.put(" hundred")
		if rem := number % 100; rem != 0 {
			w.put(" ")
			spell(w, rem)
		}

	default:
		idx, value := scale(number)
		spell(w, number/value)
		w.put(" ")
		w.put(scales[idx])
		if rem := number % value; rem != 0 {
			w.put(" ")
			spell(w, rem)
		}
	}
}

// scale returns the index into scales of the largest power of one thousand
// that is not greater than number, together with that power. number must be
// at least 1000. The index is at most 3 because 1000^4 exceeds the uint32 range.
func scale(number uint32) (int, uint32) {
	idx, value := 0, uint32(1)
	for number/value >= 1000 {
		value *= 1000
		idx++
	}
	return idx, value
}

package numwords

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convert(t *testing.T, number uint32) string {
	t.Helper()
	buf := make([]byte, 256)
	n, err := Convert(buf, number)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		number uint32
		want   string
	}{
		{"zero", 0, "zero"},
		{"one", 1, "one"},
		{"twelve", 12, "twelve"},
		{"nineteen", 19, "nineteen"},
		{"round tens", 40, "forty"},
		{"hyphenated tens", 73, "seventy-three"},
		{"round hundreds", 300, "three hundred"},
		{"hundreds with teen", 115, "one hundred fifteen"},
		{"hundreds with tens", 250, "two hundred fifty"},
		{"below thousand", 999, "nine hundred ninety-nine"},
		{"thousand", 1000, "one thousand"},
		{"thousand and one", 1001, "one thousand one"},
		{"thousands", 21042, "twenty-one thousand forty-two"},
		{"below million", 999999, "nine hundred ninety-nine thousand nine hundred ninety-nine"},
		{"million", 1000000, "one million"},
		{"million with thousands", 1500000, "one million five hundred thousand"},
		{"million with units", 2000005, "two million five"},
		{"composite", 1234567, "one million two hundred thirty-four thousand five hundred sixty-seven"},
		{"billion", 1000000000, "one billion"},
		{"billion with units", 1000000001, "one billion one"},
		{
			"uint32 max", math.MaxUint32,
			"four billion two hundred ninety-four million nine hundred sixty-seven thousand two hundred ninety-five",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convert(t, tt.number))
		})
	}
}

func TestConvertUnits(t *testing.T) {
	for n := uint32(1); n <= 19; n++ {
		assert.Equal(t, units[n], convert(t, n))
	}
}

func TestConvertTens(t *testing.T) {
	for n := uint32(20); n <= 99; n++ {
		want := tens[n/10]
		if n%10 != 0 {
			want += "-" + units[n%10]
		}
		assert.Equal(t, want, convert(t, n), "n=%d", n)
	}
}

func TestConvertRoundHundreds(t *testing.T) {
	for n := uint32(100); n <= 900; n += 100 {
		assert.Equal(t, units[n/100]+" hundred", convert(t, n))
	}
}

// Every power-of-one-thousand boundary must switch scale word exactly at the power.
func TestConvertScaleBoundaries(t *testing.T) {
	tests := []struct {
		number uint32
		want   string
	}{
		{999, "nine hundred ninety-nine"},
		{1000, "one thousand"},
		{999999, "nine hundred ninety-nine thousand nine hundred ninety-nine"},
		{1000000, "one million"},
		{999999999, "nine hundred ninety-nine million nine hundred ninety-nine thousand nine hundred ninety-nine"},
		{1000000000, "one billion"},
		{10000, "ten thousand"},
		{100000, "one hundred thousand"},
		{10000000, "ten million"},
		{100000000, "one hundred million"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convert(t, tt.number), "n=%d", tt.number)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		number    uint32
		wantIdx   int
		wantValue uint32
	}{
		{1000, 1, 1000},
		{999999, 1, 1000},
		{1000000, 2, 1000000},
		{999999999, 2, 1000000},
		{1000000000, 3, 1000000000},
		{math.MaxUint32, 3, 1000000000},
	}

	for _, tt := range tests {
		idx, value := scale(tt.number)
		assert.Equal(t, tt.wantIdx, idx, "n=%d", tt.number)
		assert.Equal(t, tt.wantValue, value, "n=%d", tt.number)
	}
}

func TestConvertInvalidArgument(t *testing.T) {
	n, err := Convert(nil, 42)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	n, err = Convert([]byte{}, 42)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConvertOverflow(t *testing.T) {
	buf := []byte("xxx")

	n, err := Convert(buf, 1000000000)
	assert.Equal(t, 0, n)
	require.ErrorIs(t, err, ErrOverflow)

	var overflow *OverflowError
	require.True(t, errors.As(err, &overflow))
	assert.Equal(t, uint32(1000000000), overflow.Number)
	assert.Equal(t, len("one billion"), overflow.Need)
	assert.Equal(t, 3, overflow.Capacity)

	// nothing is written on overflow
	assert.Equal(t, []byte("xxx"), buf)
}

func TestConvertExactFit(t *testing.T) {
	for _, number := range []uint32{0, 7, 73, 300, 1234567, math.MaxUint32} {
		need := Len(number)

		buf := bytes.Repeat([]byte{'x'}, need+1)
		n, err := Convert(buf[:need], number)
		require.NoError(t, err)
		assert.Equal(t, need, n)
		assert.Equal(t, byte('x'), buf[need], "wrote past capacity for %d", number)

		short := bytes.Repeat([]byte{'x'}, need-1)
		_, err = Convert(short, number)
		assert.ErrorIs(t, err, ErrOverflow, "n=%d", number)
		assert.Equal(t, bytes.Repeat([]byte{'x'}, need-1), short)
	}
}

func TestMaxLen(t *testing.T) {
	assert.Equal(t, MaxLen, Len(3373373373))
	assert.Equal(t, 102, Len(math.MaxUint32))

	buf := make([]byte, MaxLen)
	for _, number := range []uint32{3373373373, 3777777777, math.MaxUint32, 1373373373} {
		_, err := Convert(buf, number)
		assert.NoError(t, err, "n=%d", number)
	}
}

func TestAppendAndString(t *testing.T) {
	got := Append([]byte("amount: "), 42)
	assert.Equal(t, "amount: forty-two", string(got))
	assert.Equal(t, "one million", String(1000000))
}

func TestConvertDeterministic(t *testing.T) {
	first := convert(t, 4080604)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, convert(t, 4080604))
	}
}

func TestConvertConcurrent(t *testing.T) {
	numbers := []uint32{0, 19, 73, 999, 1234567, 1000000001, math.MaxUint32}
	want := make([]string, len(numbers))
	for i, number := range numbers {
		want[i] = String(number)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, MaxLen)
			for i := 0; i < 200; i++ {
				idx := i % len(numbers)
				n, err := Convert(buf, numbers[idx])
				if err != nil || string(buf[:n]) != want[idx] {
					errs <- String(numbers[idx])
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for failed := range errs {
		t.Errorf("concurrent conversion mismatch for %q", failed)
	}
}

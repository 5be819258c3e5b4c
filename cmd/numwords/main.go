// Command numwords prints numbers, or check amounts with -amount, in words.
//
//	numwords 1234 40
//	numwords -amount '$1,234.05'
//	numwords -cap 3 1000000000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/remiges-tech/checkwriter/amount"
	"github.com/remiges-tech/checkwriter/numwords"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 2 for usage errors and 1 if any argument could not be converted.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("numwords", flag.ContinueOnError)
	fs.SetOutput(stderr)
	capacity := fs.Int("cap", numwords.MaxLen, "size in bytes of the buffer the words are written to")
	amounts := fs.Bool("amount", false, "treat arguments as check amounts and print the amount line")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: numwords [-cap n] [-amount] value...")
		return 2
	}
	if *capacity < 0 {
		fmt.Fprintln(stderr, "numwords: -cap must not be negative")
		return 2
	}

	status := 0
	buf := make([]byte, *capacity)
	for _, arg := range fs.Args() {
		var words string
		var err error
		if *amounts {
			words, err = amountLine(arg)
		} else {
			words, err = spell(buf, arg)
		}
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", arg, err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s: %s\n", arg, words)
	}
	return status
}

func spell(buf []byte, arg string) (string, error) {
	number, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return "", fmt.Errorf("out of range 0..%d", uint32(1<<32-1))
		}
		return "", errors.New("not a non-negative integer")
	}
	n, err := numwords.Convert(buf, uint32(number))
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

func amountLine(arg string) (string, error) {
	a, err := amount.Parse(arg)
	if err != nil {
		return "", err
	}
	words, err := a.Words()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", words, a), nil
}

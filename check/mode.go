package check

import "fmt"

// Mode selects what a renderer draws.
type Mode int

const (
	// Write draws the user's check data.
	Write Mode = 0x0
	// Template draws the field guides with sample data, for printing blank stock.
	Template Mode = 0x1
	// PreviewOnly is a template shown on screen and never printed.
	PreviewOnly Mode = 0x3
)

func (m Mode) String() string {
	switch m {
	case Write:
		return "write"
	case Template:
		return "template"
	case PreviewOnly:
		return "preview"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsTemplate reports whether m draws sample data instead of the user's.
func (m Mode) IsTemplate() bool {
	return m&Template != 0
}

// Printable reports whether output in mode m may be sent to a printer.
func (m Mode) Printable() bool {
	return m != PreviewOnly
}

// Data returns the data a renderer should draw in mode m.
func (m Mode) Data(d Data) Data {
	if m.IsTemplate() {
		return Sample()
	}
	return d
}

// ParseMode maps "write", "template" and "preview" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "write", "":
		return Write, nil
	case "template":
		return Template, nil
	case "preview":
		return PreviewOnly, nil
	}
	return Write, fmt.Errorf("check: unknown mode %q", s)
}

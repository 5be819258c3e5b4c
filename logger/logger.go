// Package logger builds the logharbour logger used throughout checkwriter.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/remiges-tech/logharbour/logharbour"
)

// Priority names accepted in configuration.
const (
	PriorityDebug = "debug"
	PriorityInfo  = "info"
)

// ParsePriority maps a configured priority name to a logharbour priority.
// An empty name selects logharbour's default.
func ParsePriority(name string) (logharbour.LogPriority, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return logharbour.DefaultPriority, nil
	case PriorityDebug:
		return logharbour.Debug2, nil
	case PriorityInfo:
		return logharbour.Info, nil
	}
	return logharbour.DefaultPriority, fmt.Errorf("unknown log priority %q", name)
}

// LoadLogger creates a logharbour logger for appName writing to w, with
// os.Stderr as the fallback writer. Entries below priority are dropped.
func LoadLogger(appName string, w io.Writer, priority logharbour.LogPriority) *logharbour.Logger {
	fallbackWriter := logharbour.NewFallbackWriter(w, os.Stderr)
	lctx := logharbour.NewLoggerContext(priority)
	return logharbour.NewLogger(lctx, appName, fallbackWriter)
}

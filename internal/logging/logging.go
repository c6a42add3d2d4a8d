package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// VerbosityLevel defines the logging verbosity.
type VerbosityLevel int

const (
	Verbose VerbosityLevel = iota
	Info
	Warning
	Error
	Off
)

func (v VerbosityLevel) String() string {
	switch v {
	case Verbose:
		return "Verbose"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Off:
		return "Off"
	default:
		return fmt.Sprintf("VerbosityLevel(%d)", int(v))
	}
}

// ParseVerbosity converts a command line value into a VerbosityLevel.
// Matching is case-insensitive.
func ParseVerbosity(s string) (VerbosityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose":
		return Verbose, nil
	case "info":
		return Info, nil
	case "warning":
		return Warning, nil
	case "error":
		return Error, nil
	case "off":
		return Off, nil
	default:
		return Off, fmt.Errorf("invalid verbosity level '%s'. Valid levels are Verbose, Info, Warning, Error, Off", s)
	}
}

// SlogLevel maps the verbosity onto the slog level of the same severity.
// Off maps above every level slog emits.
func (v VerbosityLevel) SlogLevel() slog.Level {
	switch v {
	case Verbose:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// NewLogger returns a text logger writing to w that drops records below v.
func NewLogger(w io.Writer, v VerbosityLevel) *slog.Logger {
	if v == Off {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: v.SlogLevel()}))
}

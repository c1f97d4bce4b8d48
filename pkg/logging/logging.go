// Package logging configures zerolog output for the velt CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// ParseLevel maps a flag value to a zerolog level, defaulting to warn for
// anything unrecognized.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// NewConsoleLogger builds the logger the CLI attaches to its command
// context. Output is human oriented; tooling should read the command's
// stdout, not its log stream.
func NewConsoleLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:          out,
		TimeFormat:   "15:04:05.000",
		FormatCaller: formatCaller,
	}
	return zerolog.New(writer).With().Timestamp().Caller().Logger().Level(level)
}

func formatCaller(i any) string {
	caller, ok := i.(string)
	if !ok || caller == "" {
		return ""
	}
	file, line := splitCaller(caller)
	name := color.New(color.Bold).Sprint(FileNameOfPath(file))
	sep := color.New(color.Faint).Sprint(":")
	return fmt.Sprintf("%s%s%s", name, sep, line)
}

func splitCaller(caller string) (file, line string) {
	idx := strings.LastIndexByte(caller, ':')
	if idx < 0 {
		return caller, "0"
	}
	return caller[:idx], caller[idx+1:]
}

// FileNameOfPath strips the directory from a source path.
func FileNameOfPath(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

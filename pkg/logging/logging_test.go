package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/veltlang/velt/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.ParseLevel("debug"))
	assert.Equal(t, zerolog.TraceLevel, logging.ParseLevel("trace"))
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel("nonsense"))
}

func TestNewConsoleLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewConsoleLogger(&buf, zerolog.ErrorLevel)

	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Error().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileNameOfPath(t *testing.T) {
	assert.Equal(t, "b.go", logging.FileNameOfPath("a/b.go"))
	assert.Equal(t, "b.go", logging.FileNameOfPath("b.go"))
}

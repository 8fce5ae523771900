package contract

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, zerolog.WarnLevel, false)

	l.Info().Msg("hidden")
	l.Warn().Str("cycle", "abc").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"cycle":"abc"`)
	assert.Contains(t, out, `"time":`)
}

func TestLogWarnUsesInstalledLogger(t *testing.T) {
	saved := logger
	t.Cleanup(func() { SetLogger(saved) })

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, zerolog.DebugLevel, false))
	LogWarn("skipped subtotal depth", errors.New("depth 4"))

	assert.Contains(t, buf.String(), "skipped subtotal depth")
	assert.Contains(t, buf.String(), "depth 4")
	assert.Equal(t, zerolog.DebugLevel, Logger().GetLevel())
}

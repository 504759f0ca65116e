package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormatWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(New(Options{Level: "debug", Format: "json", Out: &buf}), "catalog")

	logger.Debug().Str("plant", "corn").Msg("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "catalog", line["component"])
	assert.Equal(t, "corn", line["plant"])
	assert.Equal(t, "loaded", line["message"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "shouting", Format: "json", Out: &buf})

	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Out: &buf})

	logger.Warn().Msg("careful")

	assert.Contains(t, buf.String(), "careful")
	assert.Contains(t, buf.String(), "WRN")
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bincc/bincc/internal/config"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, config.LoggingConfig{Level: "debug", Format: config.FormatJSON})
	require.NoError(t, err)

	logger.Debug("table loaded", "brands", 8)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "table loaded", entry["msg"])
	assert.EqualValues(t, 8, entry["brands"])
}

func TestNewLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, config.LoggingConfig{Level: "warn", Format: config.FormatLogfmt})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerRejectsBadConfig(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = NewLogger(&bytes.Buffer{}, config.LoggingConfig{Format: "xml"})
	assert.Error(t, err)
}

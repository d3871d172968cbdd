package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", FormatJSON, &buf)

	log.WithField("entity_id", "e1").Debug("report admitted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "report admitted", entry["msg"])
	assert.Equal(t, "e1", entry["entity_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewWithOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", FormatText, &buf)

	log.Info("stream closed")

	assert.Contains(t, buf.String(), `msg="stream closed"`)
}

func TestNewWithOutput_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := NewWithOutput("verbose", FormatJSON, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTo(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "debug", "JSON")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("scenario", "s1").Info("scenario saved")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scenario saved", entry["msg"])
	assert.Equal(t, "s1", entry["scenario"])
}

func TestNewTo_Defaults(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "chatty", "")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

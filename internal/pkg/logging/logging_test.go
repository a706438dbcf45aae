package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Parses level", func(t *testing.T) {
		logger := New("debug", "")
		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		logger := New("loud", "")
		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	})

	t.Run("Writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "alerts.log")
		logger := New("info", path)

		logger.WithField("alert_id", "a1").Info("pass finished")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"alert_id":"a1"`)
		assert.Contains(t, string(data), "pass finished")
	})
}

package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eolymp/go-texmath/internal/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texmathd.log")

	log := logger.New(path, true)
	log.Info("converted", zap.String("request_id", "abc"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if assert.NoError(t, err) {
		assert.Contains(t, string(data), `"message":"converted"`)
		assert.Contains(t, string(data), `"request_id":"abc"`)
		assert.Contains(t, string(data), `"level":"INFO"`)
	}
}

func TestNewSkipsDebugInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texmathd.log")

	log := logger.New(path, false)
	log.Debug("noise")
	log.Warn("kept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if assert.NoError(t, err) {
		assert.NotContains(t, string(data), "noise")
		assert.Contains(t, string(data), "kept")
	}
}

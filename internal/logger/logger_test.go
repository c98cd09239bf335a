package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}

func TestWithContext_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetOutput(prev)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	WithContext(ctx).WithField("operation", "getCategories").Info("dispatched")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "getCategories", entry["operation"])
	assert.Equal(t, "dispatched", entry["msg"])
}

func TestWithContext_NoRequestID(t *testing.T) {
	l := WithContext(context.Background())
	_, ok := l.Data["request_id"]
	assert.False(t, ok)
}

func TestSetup_WithRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "backend.log")
	closer := Setup(Options{Level: "debug", File: file, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	defer func() {
		assert.NoError(t, closer.Close())
	}()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	New().Info("written to file")
	assert.FileExists(t, file)
}

func TestSetup_StdoutOnly(t *testing.T) {
	closer := Setup(Options{Level: "warn"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func TestSetup_CustomConsole(t *testing.T) {
	var buf bytes.Buffer
	prev := logrus.StandardLogger().Out
	defer logrus.SetOutput(prev)

	closer := Setup(Options{Level: "info", Output: &buf})
	defer closer.Close()

	New().Info("to stderr")
	assert.Contains(t, buf.String(), "to stderr")
}

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		verbosity int
		expected  logrus.Level
	}{
		{0, logrus.InfoLevel},
		{1, logrus.DebugLevel},
		{2, logrus.TraceLevel},
		{5, logrus.TraceLevel},
	}

	for _, tt := range tests {
		Init(Config{Verbosity: tt.verbosity})
		assert.Equal(t, tt.expected, Level())
	}
	Init(Config{})
}

func TestInit_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taggit.log")
	Init(Config{File: path})
	defer Init(Config{})

	GetLogger("test").Info("hello from test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "test")
}

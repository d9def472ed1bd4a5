package logger

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_EmptyLevelIsSilent(t *testing.T) {
	l, closeFn, err := New("", filepath.Join(t.TempDir(), "never.log"))
	require.NoError(t, err)
	defer closeFn()

	l.Info("dropped")
	_, ok := l.(*noopLogger)
	assert.True(t, ok)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", filepath.Join(t.TempDir(), "x.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thermonitor.log")

	l, closeFn, err := New("info", path)
	require.NoError(t, err)

	l.Debug("below level %d", 1)
	l.Info("poll cycle took %dms", 12)
	l.Warn("sensor %s unreachable", "abc1")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "poll cycle took 12ms")
	assert.Contains(t, out, "sensor abc1 unreachable")
	assert.NotContains(t, out, "below level")
}

func TestFromZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.Debug("d %s", "one")
	l.Info("i")
	l.Warn("w")
	l.Error("e %d", 2)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "d one", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "e 2", entries[3].Message)
}

func TestNoop(t *testing.T) {
	l := Noop()
	require.NotNil(t, l)

	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %d", 42)
	l.Warn("warn")
	l.Error("error")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, l.Messages[0])
	assert.Equal(t, "info 42", l.Messages[1].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.True(t, l.Contains("info 4"))
	assert.False(t, l.Contains("absent"))

	l.Clear()
	assert.Empty(t, l.Messages)
	assert.False(t, l.HasLevel("error"))
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Debug("worker %d", n)
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.Messages, 20)
}

func TestDefaultAndSetDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	buf := NewBufferLogger()
	SetDefault(buf)

	Default().Info("via default")
	assert.True(t, buf.Contains("via default"))
}

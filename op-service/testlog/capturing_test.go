package testlog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/log"
)

func TestCaptureLogger(t *testing.T) {
	logger, logs := CaptureLogger(t, log.LevelInfo)
	child := logger.New("component", "test")

	child.Info("hello", "answer", 42)
	logger.Debug("below level")
	logger.Warn("careful")

	rec := logs.FindLog(log.LevelInfo, "hello")
	require.NotNil(t, rec)
	v, ok := rec.AttrValue("answer")
	require.True(t, ok)
	require.Equal(t, int64(42), v.Int64())
	v, ok = rec.AttrValue("component")
	require.True(t, ok)
	require.Equal(t, "test", v.String())

	require.Nil(t, logs.FindLog(log.LevelDebug, "below level"))
	require.Len(t, logs.FindLogs(log.LevelWarn, "careful"), 1)

	logs.Clear()
	require.Nil(t, logs.FindLog(log.LevelInfo, "hello"))
}

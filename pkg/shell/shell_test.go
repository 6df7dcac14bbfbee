//go:build unix

package shell

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReplaceEnvVars(t *testing.T) {
	t.Setenv("EXPBUF_DEVICE", "/dev/video2")

	require.Equal(t, "device: /dev/video2", ReplaceEnvVars("device: ${EXPBUF_DEVICE}"))
	require.Equal(t, "count: 4", ReplaceEnvVars("count: ${EXPBUF_COUNT_UNSET:4}"))
	require.Equal(t, "flags: ${EXPBUF_FLAGS_UNSET}", ReplaceEnvVars("flags: ${EXPBUF_FLAGS_UNSET}"))
	require.Equal(t, "/dev/video2:/dev/video2", ReplaceEnvVars("${EXPBUF_DEVICE}:${EXPBUF_DEVICE:x}"))
}

func TestRunUntilSignal(t *testing.T) {
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
	}()

	require.Equal(t, syscall.SIGTERM, RunUntilSignal())
}

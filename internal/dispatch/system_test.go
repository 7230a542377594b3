//go:build !windows

package dispatch

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtx-plugins/vtx-installer/internal/logging"
	"github.com/vtx-plugins/vtx-installer/internal/testutil"
)

func TestRealSystemRun_MirrorsExitCode(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := testutil.WriteArgsRecorder(t, dir, "vtx", argsFile, 2)

	rec := &exitRecorder{}
	err := New(RealSystem{}, logging.Nop(), "").Forward(stub, []string{"--help"}, rec.exit)

	assert.ErrorIs(t, err, ErrDispatched)
	assert.Equal(t, 2, rec.code)
	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "--help\n", string(got))
}

func TestRealSystemRun_Success(t *testing.T) {
	stub := testutil.WriteStub(t, t.TempDir(), "vtx")
	status, err := RealSystem{}.Run(stub, nil)
	require.NoError(t, err)
	assert.Equal(t, ExitStatus{Code: 0}, status)
}

func TestRealSystemRun_KilledBySignal(t *testing.T) {
	status, err := RealSystem{}.Run("/bin/sh", []string{"-c", "kill -KILL $$"})
	require.NoError(t, err)
	assert.Equal(t, 1, status.Code)
	assert.Equal(t, syscall.SIGKILL, status.Signal)
	assert.Equal(t, "SIGKILL", signalName(status.Signal))
}

func TestRealSystemRun_StartFailure(t *testing.T) {
	_, err := RealSystem{}.Run(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "start "))
}

func TestForwardable(t *testing.T) {
	assert.False(t, forwardable(os.Interrupt))
	assert.True(t, forwardable(syscall.SIGTERM))
	assert.Equal(t, "SIGTERM", signalName(syscall.SIGTERM))
}

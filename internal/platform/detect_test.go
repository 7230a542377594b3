package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubHost(t *testing.T, osName, arch, machine string, machineErr error) {
	t.Helper()
	origOS, origArch, origKernel := goos, goarch, kernelArch
	t.Cleanup(func() {
		goos, goarch, kernelArch = origOS, origArch, origKernel
	})
	goos = osName
	goarch = arch
	kernelArch = func() (string, error) { return machine, machineErr }
}

func TestDetect_PrefersKernelArch(t *testing.T) {
	stubHost(t, "darwin", "amd64", "arm64", nil)

	got, err := Detect(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, Key{OS: OSDarwin, Arch: ArchARM64}, got)
}

func TestDetect_FallsBackToBuildArch(t *testing.T) {
	tests := []struct {
		name       string
		machine    string
		machineErr error
	}{
		{name: "kernel error", machineErr: errors.New("uname failed")},
		{name: "unknown machine", machine: "riscv64"},
		{name: "empty machine", machine: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubHost(t, "linux", "arm64", tt.machine, tt.machineErr)

			got, err := Detect(Overrides{})
			require.NoError(t, err)
			assert.Equal(t, Key{OS: OSLinux, Arch: ArchARM64}, got)
		})
	}
}

func TestDetect_Overrides(t *testing.T) {
	stubHost(t, "darwin", "arm64", "arm64", nil)

	got, err := Detect(Overrides{OS: "linux", Arch: "x86_64"})
	require.NoError(t, err)
	assert.Equal(t, Key{OS: OSLinux, Arch: ArchAMD64}, got)
}

func TestDetect_UnsupportedHost(t *testing.T) {
	stubHost(t, "freebsd", "amd64", "amd64", nil)

	_, err := Detect(Overrides{})
	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "freebsd", unsupported.OS)
}

package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHost(t *testing.T) {
	tests := []struct {
		name   string
		osName string
		arch   string
		want   Key
	}{
		{name: "linux amd64", osName: "linux", arch: "amd64", want: Key{OS: OSLinux, Arch: ArchAMD64}},
		{name: "linux x86_64", osName: "linux", arch: "x86_64", want: Key{OS: OSLinux, Arch: ArchAMD64}},
		{name: "linux aarch64", osName: "linux", arch: "aarch64", want: Key{OS: OSLinux, Arch: ArchARM64}},
		{name: "darwin arm64", osName: "darwin", arch: "arm64", want: Key{OS: OSDarwin, Arch: ArchARM64}},
		{name: "darwin x64", osName: "Darwin", arch: "x64", want: Key{OS: OSDarwin, Arch: ArchAMD64}},
		{name: "windows amd64", osName: "windows", arch: "AMD64", want: Key{OS: OSWindows, Arch: ArchAMD64}},
		{name: "win32 arm64", osName: "win32", arch: "arm64", want: Key{OS: OSWindows, Arch: ArchARM64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHost(tt.osName, tt.arch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromHost_Unsupported(t *testing.T) {
	tests := []struct {
		osName string
		arch   string
	}{
		{osName: "freebsd", arch: "amd64"},
		{osName: "linux", arch: "386"},
		{osName: "linux", arch: "armv7l"},
		{osName: "plan9", arch: "arm64"},
		{osName: "", arch: ""},
	}

	for _, tt := range tests {
		t.Run(tt.osName+"/"+tt.arch, func(t *testing.T) {
			got, err := FromHost(tt.osName, tt.arch)
			require.Error(t, err)
			assert.Equal(t, Key{}, got)

			var unsupported *UnsupportedError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, tt.osName, unsupported.OS)
			assert.Equal(t, tt.arch, unsupported.Arch)
		})
	}
}

func TestSupported_RoundTripsThroughTable(t *testing.T) {
	seen := map[Key]bool{}
	for _, key := range Supported() {
		got, err := FromHost(key.OS, key.Arch)
		require.NoError(t, err)
		assert.Equal(t, key, got)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}

	// Every tag the tables can produce must be listed in Supported.
	for _, osTag := range osTags {
		for _, archTag := range archTags {
			assert.True(t, seen[Key{OS: osTag, Arch: archTag}], "missing %s/%s", osTag, archTag)
		}
	}
}

func TestKeyExecutableName(t *testing.T) {
	assert.Equal(t, "vtx.exe", Key{OS: OSWindows, Arch: ArchAMD64}.ExecutableName("vtx"))
	assert.Equal(t, "vtx", Key{OS: OSLinux, Arch: ArchAMD64}.ExecutableName("vtx"))
	assert.Equal(t, "vtx", Key{OS: OSDarwin, Arch: ArchARM64}.ExecutableName("vtx"))
	assert.Equal(t, "linux/arm64", Key{OS: OSLinux, Arch: ArchARM64}.String())
}

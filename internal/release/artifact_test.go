package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtx-plugins/vtx-installer/internal/platform"
)

func TestLocate_AllSupportedPlatforms(t *testing.T) {
	spec := Spec{Repo: "acme/tool", Requested: "latest", Resolved: "v2.0.0"}
	want := map[platform.Key]string{
		{OS: "linux", Arch: "amd64"}:   "tool-linux-amd64.tar.gz",
		{OS: "linux", Arch: "arm64"}:   "tool-linux-arm64.tar.gz",
		{OS: "darwin", Arch: "amd64"}:  "tool-darwin-amd64.tar.gz",
		{OS: "darwin", Arch: "arm64"}:  "tool-darwin-arm64.tar.gz",
		{OS: "windows", Arch: "amd64"}: "tool-windows-amd64.zip",
		{OS: "windows", Arch: "arm64"}: "tool-windows-arm64.zip",
	}
	require.Len(t, platform.Supported(), len(want))

	for _, key := range platform.Supported() {
		t.Run(key.String(), func(t *testing.T) {
			got, err := Locate(spec, key, "tool", "")
			require.NoError(t, err)
			assert.Equal(t, want[key], got.ArchiveName)
			assert.Equal(t, want[key]+".sha256", got.ChecksumName)
			assert.Equal(t, "https://github.com/acme/tool/releases/download/v2.0.0", got.BaseURL)
			if key.IsWindows() {
				assert.Equal(t, KindZip, got.Kind)
			} else {
				assert.Equal(t, KindTarGz, got.Kind)
			}

			again, err := Locate(spec, key, "tool", "")
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestLocate_URLs(t *testing.T) {
	spec := Spec{Repo: "acme/tool", Resolved: "v1.0.0"}
	got, err := Locate(spec, platform.Key{OS: "linux", Arch: "amd64"}, "vtx", "http://127.0.0.1:9999/")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/acme/tool/releases/download/v1.0.0/vtx-linux-amd64.tar.gz", got.ArchiveURL())
	assert.Equal(t, "http://127.0.0.1:9999/acme/tool/releases/download/v1.0.0/vtx-linux-amd64.tar.gz.sha256", got.ChecksumURL())
}

func TestLocate_RequiresResolvedSpec(t *testing.T) {
	_, err := Locate(Spec{Repo: "acme/tool", Requested: "latest"}, platform.Key{OS: "linux", Arch: "amd64"}, "vtx", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has not been resolved")
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "v1.2.3", NormalizeTag("1.2.3"))
	assert.Equal(t, "v1.2.3", NormalizeTag("v1.2.3"))
	assert.True(t, IsLatest("latest"))
	assert.True(t, IsLatest(" Latest "))
	assert.False(t, IsLatest("v1.0.0"))
}

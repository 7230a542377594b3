package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestParseChecksum(t *testing.T) {
	digest := digestOf([]byte("x"))

	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "digest only", data: digest, want: digest},
		{name: "with filename", data: digest + "  tool-linux-amd64.tar.gz\n", want: digest},
		{name: "binary marker", data: digest + " *tool.zip", want: digest},
		{name: "upper case", data: strings.ToUpper(digest) + "\n", want: digest},
		{name: "leading whitespace", data: "\n  " + digest, want: digest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChecksum("sidecar", []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksum_Malformed(t *testing.T) {
	for _, data := range []string{"", "   \n", "deadbeef  tool.tar.gz", strings.Repeat("z", 64)} {
		_, err := ParseChecksum("sidecar", []byte(data))
		var intErr *IntegrityError
		require.True(t, errors.As(err, &intErr), "data %q", data)
		assert.Equal(t, "sidecar", intErr.Path)
	}
}

func TestFileSHA256(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a", []byte("hello"))

	got, err := FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", got)

	_, err = FileSHA256(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerify_Match(t *testing.T) {
	dir := t.TempDir()
	data := []byte("archive contents")
	archive := writeFile(t, dir, "archive", data)
	checksum := writeFile(t, dir, "checksum", []byte(strings.ToUpper(digestOf(data))+"  tool-linux-amd64.tar.gz\n"))

	assert.NoError(t, Verify(archive, checksum))
}

func TestVerify_SingleHexFlipFails(t *testing.T) {
	dir := t.TempDir()
	data := []byte("archive contents")
	archive := writeFile(t, dir, "archive", data)

	digest := digestOf(data)
	flipped := []byte(digest)
	if flipped[10] == '0' {
		flipped[10] = '1'
	} else {
		flipped[10] = '0'
	}
	checksum := writeFile(t, dir, "checksum", append(flipped, []byte("  tool.tar.gz\n")...))

	err := Verify(archive, checksum)
	var intErr *IntegrityError
	require.True(t, errors.As(err, &intErr))
	assert.Equal(t, string(flipped), intErr.Expected)
	assert.Equal(t, digest, intErr.Actual)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestVerify_Deadbeef(t *testing.T) {
	dir := t.TempDir()
	archive := writeFile(t, dir, "archive", []byte("data"))
	checksum := writeFile(t, dir, "checksum", []byte("deadbeef  tool.tar.gz\n"))

	err := Verify(archive, checksum)
	var intErr *IntegrityError
	require.True(t, errors.As(err, &intErr))
}

func TestVerify_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	checksum := writeFile(t, dir, "checksum", []byte(digestOf([]byte("x"))))

	assert.ErrorIs(t, Verify(filepath.Join(dir, "nope"), checksum), os.ErrNotExist)
	assert.ErrorIs(t, Verify(checksum, filepath.Join(dir, "nope")), os.ErrNotExist)
}

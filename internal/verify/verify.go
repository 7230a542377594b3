// Package verify checks downloaded archives against their SHA-256 sidecars.
package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

const digestLen = sha256.Size * 2

// IntegrityError reports a malformed checksum sidecar or a digest mismatch.
// Expected and Actual are set only for mismatches.
type IntegrityError struct {
	Path     string
	Expected string
	Actual   string
	msg      string
}

func (e *IntegrityError) Error() string {
	return e.msg
}

// ParseChecksum returns the digest from sidecar contents in "<hex>  <filename>" form.
// The filename is ignored.
func ParseChecksum(name string, data []byte) (string, error) {
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", &IntegrityError{Path: name, msg: fmt.Sprintf(messages.VerifyEmptyChecksumFmt, name)}
	}
	digest := strings.ToLower(fields[0])
	if len(digest) != digestLen {
		return "", &IntegrityError{Path: name, msg: fmt.Sprintf(messages.VerifyBadDigestFmt, name, fields[0])}
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return "", &IntegrityError{Path: name, msg: fmt.Sprintf(messages.VerifyBadDigestFmt, name, fields[0])}
	}
	return digest, nil
}

// FileSHA256 returns the lower-case hex SHA-256 of the file at path.
func FileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf(messages.VerifyOpenFmt, path, err)
	}
	defer func() { _ = file.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf(messages.VerifyHashFmt, path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Verify checks the archive at archivePath against the sidecar at checksumPath.
func Verify(archivePath string, checksumPath string) error {
	data, err := os.ReadFile(checksumPath)
	if err != nil {
		return fmt.Errorf(messages.VerifyReadChecksumFmt, checksumPath, err)
	}
	expected, err := ParseChecksum(checksumPath, data)
	if err != nil {
		return err
	}
	actual, err := FileSHA256(archivePath)
	if err != nil {
		return err
	}
	if actual != expected {
		return &IntegrityError{
			Path:     archivePath,
			Expected: expected,
			Actual:   actual,
			msg:      fmt.Sprintf(messages.VerifyMismatchFmt, archivePath, expected, actual),
		}
	}
	return nil
}

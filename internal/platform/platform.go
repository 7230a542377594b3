// Package platform maps host OS and architecture names onto the release
// platform tags used in vtx archive names.
package platform

import (
	"fmt"
	"strings"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// Release OS tags.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// Release architecture tags.
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

// osTags maps a host OS name onto its release tag.
var osTags = map[string]string{
	"linux":   OSLinux,
	"darwin":  OSDarwin,
	"macos":   OSDarwin,
	"windows": OSWindows,
	"win32":   OSWindows,
}

// archTags maps a host architecture name onto its release tag.
var archTags = map[string]string{
	"amd64":   ArchAMD64,
	"x86_64":  ArchAMD64,
	"x86-64":  ArchAMD64,
	"x64":     ArchAMD64,
	"arm64":   ArchARM64,
	"aarch64": ArchARM64,
	"armv8":   ArchARM64,
	"armv8b":  ArchARM64,
}

// Key identifies a supported release platform.
type Key struct {
	OS   string
	Arch string
}

// UnsupportedError reports a host OS or architecture with no release artifacts.
type UnsupportedError struct {
	OS   string
	Arch string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf(messages.PlatformUnsupportedFmt, e.OS, e.Arch)
}

// FromHost converts raw host names into a Key.
// Both names must be recognized; there is no partial result.
func FromHost(osName, arch string) (Key, error) {
	osTag, osOK := osTags[normalize(osName)]
	archTag, archOK := archTags[normalize(arch)]
	if !osOK || !archOK {
		return Key{}, &UnsupportedError{OS: osName, Arch: arch}
	}
	return Key{OS: osTag, Arch: archTag}, nil
}

// Supported returns every supported Key, ordered by OS then architecture.
func Supported() []Key {
	return []Key{
		{OS: OSDarwin, Arch: ArchAMD64},
		{OS: OSDarwin, Arch: ArchARM64},
		{OS: OSLinux, Arch: ArchAMD64},
		{OS: OSLinux, Arch: ArchARM64},
		{OS: OSWindows, Arch: ArchAMD64},
		{OS: OSWindows, Arch: ArchARM64},
	}
}

// IsWindows reports whether k targets windows.
func (k Key) IsWindows() bool {
	return k.OS == OSWindows
}

// ExecutableName returns name with the platform's executable suffix.
func (k Key) ExecutableName(name string) string {
	if k.IsWindows() {
		return name + ".exe"
	}
	return name
}

func (k Key) String() string {
	return k.OS + "/" + k.Arch
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

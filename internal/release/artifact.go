package release

import (
	"fmt"
	"strings"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
	"github.com/vtx-plugins/vtx-installer/internal/platform"
)

// DefaultReleaseHost is where release assets are downloaded from.
const DefaultReleaseHost = "https://github.com"

// Kind is an archive format.
type Kind string

// Archive formats published for vtx releases.
const (
	KindTarGz Kind = "tar.gz"
	KindZip   Kind = "zip"
)

// Artifact names the files published for one release and platform.
type Artifact struct {
	ArchiveName  string
	ChecksumName string
	BaseURL      string
	Kind         Kind
}

// ArchiveURL returns the archive download URL.
func (a Artifact) ArchiveURL() string {
	return a.BaseURL + "/" + a.ArchiveName
}

// ChecksumURL returns the checksum sidecar download URL.
func (a Artifact) ChecksumURL() string {
	return a.BaseURL + "/" + a.ChecksumName
}

// KindFor returns the archive format published for key.
func KindFor(key platform.Key) Kind {
	if key.IsWindows() {
		return KindZip
	}
	return KindTarGz
}

// Locate derives the artifact names for a resolved spec on key.
// It performs no I/O.
func Locate(spec Spec, key platform.Key, binary string, releaseHost string) (Artifact, error) {
	if spec.Resolved == "" {
		return Artifact{}, fmt.Errorf(messages.LocateUnresolvedSpecFmt, spec.Requested, spec.Repo)
	}
	if releaseHost == "" {
		releaseHost = DefaultReleaseHost
	}
	kind := KindFor(key)
	archive := fmt.Sprintf("%s-%s-%s.%s", binary, key.OS, key.Arch, kind)
	return Artifact{
		ArchiveName:  archive,
		ChecksumName: archive + ".sha256",
		BaseURL: fmt.Sprintf("%s/%s/releases/download/%s",
			strings.TrimRight(releaseHost, "/"), strings.TrimSpace(spec.Repo), spec.Resolved),
		Kind: kind,
	}, nil
}

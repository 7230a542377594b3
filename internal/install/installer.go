// Package install extracts verified release archives and places the vtx
// executable at its final path.
package install

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
	"github.com/vtx-plugins/vtx-installer/internal/release"
)

// MissingArtifactError reports an archive that does not contain the executable.
type MissingArtifactError struct {
	Archive    string
	Executable string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf(messages.InstallMissingBinaryFmt, e.Executable, e.Archive)
}

// Installer extracts an archive and installs the executable it contains.
type Installer struct {
	// ExecutableName is the base name searched for in the archive, e.g. "vtx.exe".
	ExecutableName string
	// Windows skips setting the executable bit.
	Windows bool
}

// Install extracts archivePath into a fresh directory next to it, finds
// ExecutableName anywhere in the tree, and atomically replaces finalPath with it.
// Repeated installs overwrite finalPath.
func (inst Installer) Install(archivePath string, kind release.Kind, finalPath string) error {
	extractDir, err := os.MkdirTemp(filepath.Dir(archivePath), "extract-*")
	if err != nil {
		return fmt.Errorf(messages.InstallCreateScratchFmt, err)
	}
	defer func() { _ = os.RemoveAll(extractDir) }()

	if err := extract(archivePath, kind, extractDir); err != nil {
		return err
	}
	src, err := findExecutable(extractDir, inst.ExecutableName)
	if err != nil {
		return err
	}
	if src == "" {
		return &MissingArtifactError{Archive: filepath.Base(archivePath), Executable: inst.ExecutableName}
	}
	return placeExecutable(src, finalPath, inst.Windows)
}

// findExecutable returns the shallowest regular file under root named name,
// or "" when there is none.
func findExecutable(root string, name string) (string, error) {
	best := ""
	bestDepth := -1
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || d.Name() != name {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		depth := strings.Count(rel, string(os.PathSeparator))
		if bestDepth < 0 || depth < bestDepth {
			best, bestDepth = path, depth
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf(messages.InstallWalkFmt, err)
	}
	return best, nil
}

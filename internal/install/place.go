package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

var (
	osChmod     = os.Chmod
	replaceFile = atomic.ReplaceFile
)

// placeExecutable copies src to finalPath through a temp file in the same
// directory, so finalPath is either the old file or the complete new one.
func placeExecutable(src string, finalPath string, windows bool) error {
	dir, file := filepath.Split(finalPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFmt, dir, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf(messages.InstallCopyBinaryFmt, finalPath, err)
	}
	defer func() { _ = in.Close() }()

	tmp, err := os.CreateTemp(dir, "."+file+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.InstallCreateTempFmt, dir, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return fmt.Errorf(messages.InstallCopyBinaryFmt, finalPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf(messages.InstallCopyBinaryFmt, finalPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.InstallCopyBinaryFmt, finalPath, err)
	}
	if !windows {
		if err := osChmod(tmpName, 0o755); err != nil {
			return fmt.Errorf(messages.InstallChmodFmt, finalPath, err)
		}
	}
	if err := replaceFile(tmpName, finalPath); err != nil {
		return fmt.Errorf(messages.InstallReplaceFmt, finalPath, err)
	}
	committed = true
	return nil
}

package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

var osMkdirTemp = os.MkdirTemp

// workspace is the scratch directory of one install run.
type workspace struct {
	dir string
}

func newWorkspace(parent string) (*workspace, error) {
	dir, err := osMkdirTemp(parent, "vtx-install-*")
	if err != nil {
		return nil, fmt.Errorf(messages.InstallCreateScratchFmt, err)
	}
	return &workspace{dir: dir}, nil
}

// path returns the location of name inside the workspace.
func (w *workspace) path(name string) string {
	return filepath.Join(w.dir, name)
}

// Close removes the workspace and everything in it.
func (w *workspace) Close() error {
	return os.RemoveAll(w.dir)
}

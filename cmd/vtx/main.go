// Command vtx launches the installed vtx executable, forwarding every
// argument unchanged and exiting with the child's exit code.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/vtx-plugins/vtx-installer/internal/config"
	"github.com/vtx-plugins/vtx-installer/internal/dispatch"
	"github.com/vtx-plugins/vtx-installer/internal/logging"
	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

var (
	loadConfig = func() (config.Config, error) { return config.Load(config.RealSystem{}) }
	newSystem  = func() dispatch.System { return dispatch.RealSystem{} }
	getenv     = os.Getenv
	goos       = runtime.GOOS
)

func main() {
	runMain(os.Args, os.Stderr, os.Exit)
}

// runMain forwards args[1:] to the installed binary. Launcher failures print
// a tagged error and exit 1; otherwise exit receives the child's code.
func runMain(args []string, stderr io.Writer, exit func(int)) {
	colors := logging.ColorEnabled(stderr, getenv)
	fail := func(err error) {
		logging.PrintError(stderr, err, colors)
		exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail(fmt.Errorf(messages.DispatchLoadConfigFailedFmt, err))
		return
	}

	var forwarded []string
	if len(args) > 1 {
		forwarded = args[1:]
	}
	log := logging.New(stderr, cfg.Debug, colors)
	err = dispatch.New(newSystem(), log, cfg.FallbackBinary).Forward(cfg.BinaryPath(goos == "windows"), forwarded, exit)
	if errors.Is(err, dispatch.ErrDispatched) {
		return
	}
	if err != nil {
		fail(err)
	}
}

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vtx-plugins/vtx-installer/internal/config"
	"github.com/vtx-plugins/vtx-installer/internal/logging"
)

// Version is overridden at build time.
var Version = "dev"

var (
	executeFunc = execute
	loadConfig  = func() (config.Config, error) { return config.Load(config.RealSystem{}) }
	getenv      = os.Getenv
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the installer command with the provided args and output writers.
func execute(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// runMain executes the installer and exits 1 on any failure.
// Interrupts cancel in-flight downloads so scratch cleanup still runs.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := executeFunc(ctx, args, stdout, stderr); err != nil {
		logging.PrintError(stderr, err, logging.ColorEnabled(stderr, getenv))
		exit(1)
	}
}

package dispatch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// ExitStatus describes how a child process ended.
// Signal is set when the child was killed by a signal; Code is then 1.
type ExitStatus struct {
	Code   int
	Signal os.Signal
}

// System abstracts the OS operations needed to forward a command.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Run(path string, args []string) (ExitStatus, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Run starts path with the process's standard streams, relays termination
// signals to it while it runs, and waits for it to exit.
func (RealSystem) Run(path string, args []string) (ExitStatus, error) {
	return runChild(exec.Command(path, args...))
}

func runChild(cmd *exec.Cmd) (ExitStatus, error) {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, relaySignals...)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return ExitStatus{}, fmt.Errorf(messages.DispatchStartFmt, cmd.Path, err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case s := <-sigs:
				if forwardable(s) {
					_ = cmd.Process.Signal(s)
				}
			case <-done:
				return
			}
		}
	}()
	err := cmd.Wait()
	close(done)

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return ExitStatus{}, fmt.Errorf(messages.DispatchStartFmt, cmd.Path, err)
	}
	return exitStatus(cmd.ProcessState), nil
}

// exitStatus maps a finished process to the code the wrapper exits with.
func exitStatus(state *os.ProcessState) ExitStatus {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitStatus{Code: 1, Signal: ws.Signal()}
	}
	code := state.ExitCode()
	if code < 0 {
		code = 1
	}
	return ExitStatus{Code: code}
}

//go:build !windows

package dispatch

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Interrupts reach the child through the terminal's process group, so the
// wrapper only ignores them; other termination signals are relayed.
var relaySignals = []os.Signal{os.Interrupt, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT}

func forwardable(s os.Signal) bool {
	return s != os.Interrupt
}

func signalName(s os.Signal) string {
	if sig, ok := s.(syscall.Signal); ok {
		if name := unix.SignalName(sig); name != "" {
			return name
		}
	}
	return s.String()
}

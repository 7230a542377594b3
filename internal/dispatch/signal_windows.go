//go:build windows

package dispatch

import "os"

// Ctrl+C is delivered to every process on the console; the wrapper ignores it
// and waits for the child.
var relaySignals = []os.Signal{os.Interrupt}

func forwardable(os.Signal) bool {
	return false
}

func signalName(s os.Signal) string {
	return s.String()
}

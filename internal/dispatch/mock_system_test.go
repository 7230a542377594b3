package dispatch

import (
	"errors"
	"fmt"
	"os"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
// Stat falls back to the real filesystem so tests can use t.TempDir fixtures;
// Run fails fast because starting processes must be explicit.
type testSystem struct {
	RealSystem

	StatFunc func(name string) (os.FileInfo, error)
	RunFunc  func(path string, args []string) (ExitStatus, error)
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}

func (s *testSystem) Run(path string, args []string) (ExitStatus, error) {
	if s.RunFunc != nil {
		return s.RunFunc(path, args)
	}
	return ExitStatus{}, fmt.Errorf("%w: Run", errNotMocked)
}

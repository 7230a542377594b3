package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
)

// System abstracts the process environment read by Load.
type System interface {
	Getenv(key string) string
	HomeDir() (string, error)
	ReadFile(name string) ([]byte, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// HomeDir returns the current user's home directory.
func (RealSystem) HomeDir() (string, error) {
	return homedir.Dir()
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Package dispatch forwards a vtx invocation to the installed executable.
package dispatch

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// ErrDispatched signals that the child ran and the exit handler was called.
var ErrDispatched = errors.New(messages.DispatchErrDispatched)

// NotInstalledError reports that the vtx executable is missing.
type NotInstalledError struct {
	Path string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf(messages.DispatchNotInstalledFmt, e.Path)
}

// Forwarder runs the installed executable with the caller's arguments.
type Forwarder struct {
	sys      System
	log      zerolog.Logger
	fallback string
}

// New creates a Forwarder. fallback, when non-empty, is used if the installed
// executable is missing; using it logs a warning.
func New(sys System, log zerolog.Logger, fallback string) *Forwarder {
	return &Forwarder{sys: sys, log: log, fallback: fallback}
}

// Forward runs path with args, waits for it, and calls exit with its exit code.
// It returns ErrDispatched once exit has been called. Nothing is installed
// implicitly: a missing executable yields *NotInstalledError.
func (f *Forwarder) Forward(path string, args []string, exit func(int)) error {
	if f.sys == nil {
		return errors.New(messages.DispatchSystemRequired)
	}
	if exit == nil {
		return errors.New(messages.DispatchExitHandlerRequired)
	}

	target, err := f.target(path)
	if err != nil {
		return err
	}
	f.log.Debug().Strs("args", args).Msgf(messages.DispatchForwardingDebugFmt, target)

	status, err := f.sys.Run(target, args)
	if err != nil {
		return err
	}
	if status.Signal != nil {
		f.log.Debug().Msgf(messages.DispatchChildSignaledFmt, signalName(status.Signal))
	} else {
		f.log.Debug().Msgf(messages.DispatchChildExitedFmt, status.Code)
	}
	exit(status.Code)
	return ErrDispatched
}

// target returns the executable to run.
func (f *Forwarder) target(path string) (string, error) {
	info, err := f.sys.Stat(path)
	if err == nil {
		if info.IsDir() {
			return "", fmt.Errorf(messages.DispatchNotExecutableFmt, path)
		}
		return path, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf(messages.DispatchStatBinaryFmt, path, err)
	}

	if f.fallback != "" {
		info, ferr := f.sys.Stat(f.fallback)
		if ferr == nil && !info.IsDir() {
			f.log.Warn().Msgf(messages.DispatchFallbackWarningFmt, path, f.fallback)
			return f.fallback, nil
		}
		if ferr == nil {
			ferr = fmt.Errorf(messages.DispatchNotExecutableFmt, f.fallback)
		}
		f.log.Warn().Msgf(messages.DispatchFallbackMissingFmt, f.fallback, ferr)
	}
	return "", &NotInstalledError{Path: path}
}

package messages

// Launcher messages for the vtx shim.
const (
	// DispatchErrDispatched indicates the child ran and the exit handler was called.
	DispatchErrDispatched       = "dispatch executed"
	DispatchExitHandlerRequired = "exit handler is required"
	DispatchSystemRequired      = "dispatch system is required"

	DispatchNotInstalledFmt     = "vtx is not installed at %s; run vtx-install (or reinstall the npm package) and try again"
	DispatchNotExecutableFmt    = "%s is a directory, not the vtx executable; run vtx-install to reinstall"
	DispatchStatBinaryFmt       = "check installed binary %s: %w"
	DispatchStartFmt            = "start %s: %w"
	DispatchFallbackWarningFmt  = "vtx is not installed at %s; using fallback binary %s"
	DispatchFallbackMissingFmt  = "fallback binary %s is not usable: %v"
	DispatchChildSignaledFmt    = "child terminated by signal %s"
	DispatchChildExitedFmt      = "child exited with code %d"
	DispatchForwardingDebugFmt  = "forwarding to %s"
	DispatchLoadConfigFailedFmt = "load configuration: %w"
)

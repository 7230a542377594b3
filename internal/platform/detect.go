package platform

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

var (
	goos       = runtime.GOOS
	goarch     = runtime.GOARCH
	kernelArch = host.KernelArch
)

// Overrides force a platform instead of detecting it. Empty fields are detected.
type Overrides struct {
	OS   string
	Arch string
}

// Detect returns the Key for the current host.
//
// The architecture comes from the kernel when it reports a recognized machine
// name, so an amd64 build running under emulation on arm64 still selects the
// native arm64 artifact. Otherwise the build architecture is used.
func Detect(ov Overrides) (Key, error) {
	osName := ov.OS
	if osName == "" {
		osName = goos
	}
	arch := ov.Arch
	if arch == "" {
		arch = hostArch()
	}
	return FromHost(osName, arch)
}

func hostArch() string {
	machine, err := kernelArch()
	if err == nil {
		if _, ok := archTags[normalize(machine)]; ok {
			return machine
		}
	}
	return goarch
}

package platform

import (
	"fmt"
	"runtime"

	"github.com/ralt/lockedpip/internal/models"
	"github.com/sirupsen/logrus"
)

// HostProbe reports the host operating system and CPU architecture the way
// uname does ("Linux", "x86_64")
type HostProbe interface {
	OS() string
	Arch() string
}

// RuntimeProbe reads the host from the Go runtime
type RuntimeProbe struct{}

// NewRuntimeProbe creates a probe for the running host
func NewRuntimeProbe() *RuntimeProbe {
	return &RuntimeProbe{}
}

// OS returns the uname style system name
func (p *RuntimeProbe) OS() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return runtime.GOOS
	}
}

// Arch returns the uname style machine name
func (p *RuntimeProbe) Arch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm64":
		if runtime.GOOS == "darwin" {
			return "arm64"
		}
		return "aarch64"
	default:
		return runtime.GOARCH
	}
}

// StaticProbe reports fixed values
type StaticProbe struct {
	System  string
	Machine string
}

func (p StaticProbe) OS() string   { return p.System }
func (p StaticProbe) Arch() string { return p.Machine }

// Detect maps the host to a conda platform name such as linux-64 or osx-arm64
func Detect(probe HostProbe) (string, error) {
	system, arch := probe.OS(), probe.Arch()

	switch system {
	case "Linux":
		if arch != "aarch64" && arch != "ppc64le" {
			arch = "64"
		}
		return "linux-" + arch, nil
	case "Darwin":
		if arch != "arm64" {
			arch = "64"
		}
		return "osx-" + arch, nil
	default:
		return "", &models.LockError{
			Type: models.ErrPlatformDetection,
			Err:  fmt.Errorf("cannot determine platform for OS %q (%s), please specify one with --platform", system, arch),
		}
	}
}

// Resolve picks the platform for a run. Without detection the explicit value
// is returned as is; an empty result means the lockfile decides. With
// detection, the explicit value wins over the detected one.
func Resolve(explicit string, detect bool, probe HostProbe) (string, error) {
	if !detect {
		return explicit, nil
	}

	detected, err := Detect(probe)
	if err != nil {
		if explicit != "" {
			logrus.Debugf("Platform detection failed, using %s: %v", explicit, err)
			return explicit, nil
		}
		return "", err
	}

	if explicit != "" && explicit != detected {
		logrus.Warnf("Detected platform %s differs from requested platform %s, using %s", detected, explicit, explicit)
		return explicit, nil
	}

	logrus.Debugf("Detected platform %s", detected)
	return detected, nil
}

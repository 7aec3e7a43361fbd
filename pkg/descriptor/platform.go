// Package descriptor resolves the package descriptor for the Diligent
// graphics engine library: platform context plus a boolean option set in,
// resolved dependency set, build plan and export manifest out.
package descriptor

import (
	"fmt"
	"strings"
)

// OS identifies the target operating system.
type OS string

const (
	Windows OS = "windows"
	Linux   OS = "linux"
	MacOS   OS = "macos"
	FreeBSD OS = "freebsd"
	OtherOS OS = "other"
)

// BuildType is the configuration the external build runs under.
type BuildType string

const (
	Debug   BuildType = "Debug"
	Release BuildType = "Release"
)

// PlatformContext describes the target of one resolution. Supplied by the
// invoking environment and never mutated after construction.
type PlatformContext struct {
	OS         OS
	Arch       string
	HostArch   string // empty means building natively (HostArch == Arch)
	Compiler   string
	BuildType  BuildType
	CrossBuild bool
}

func (p PlatformContext) String() string {
	return string(p.OS) + "-" + p.Arch + "-" + string(p.BuildType)
}

// NativeWordSize reports whether the target pointer width matches the host.
// A cross build between a 64-bit host and a 32-bit target (or the reverse)
// returns false; anything else, including a plain native build, returns true.
func (p PlatformContext) NativeWordSize() bool {
	if !p.CrossBuild {
		return true
	}
	host := p.HostArch
	if host == "" {
		return true
	}
	return wordSize(host) == wordSize(p.Arch)
}

func wordSize(arch string) int {
	switch strings.ToLower(arch) {
	case "x86", "i386", "i486", "i586", "i686", "386", "armv7", "armv6", "arm":
		return 32
	default:
		return 64
	}
}

// ParseOS maps a settings string to an OS value. Unrecognized names resolve
// to OtherOS rather than failing: the platform is still a valid context, it
// just has no export table entry.
func ParseOS(s string) OS {
	switch strings.ToLower(s) {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "macos", "darwin", "osx":
		return MacOS
	case "freebsd":
		return FreeBSD
	default:
		return OtherOS
	}
}

// ParseBuildType maps a settings string to a BuildType.
func ParseBuildType(s string) (BuildType, error) {
	switch strings.ToLower(s) {
	case "debug":
		return Debug, nil
	case "release", "":
		return Release, nil
	default:
		return "", fmt.Errorf("unknown build type %q (want Debug or Release)", s)
	}
}

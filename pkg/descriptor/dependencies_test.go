// This file contains tests for dependency predicate evaluation and the
// embedded profiles
package descriptor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hashicorp/go-hclog"

	descerrors "github.com/rendevio/gfxpack/pkg/descriptor/errors"
)

func mustOptions(t *testing.T, platform PlatformContext, requested map[string]bool) OptionSet {
	t.Helper()
	options, err := ResolveOptions(platform, requested)
	if err != nil {
		t.Fatalf("ResolveOptions() error = %v", err)
	}
	return options
}

// TestResolveDependenciesLinux tests the Linux/x86_64/Release scenario
// against the stable profile
func TestResolveDependenciesLinux(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "dependencies_test",
		Level: hclog.Trace,
	})

	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	options := mustOptions(t, platform, map[string]bool{"shared": false})

	profile, err := LoadProfile("stable")
	if err != nil {
		t.Fatalf("LoadProfile(stable) error = %v", err)
	}

	deps, err := ResolveDependencies(platform, options, profile)
	if err != nil {
		t.Fatalf("ResolveDependencies() error = %v", err)
	}
	logger.Info("🧩 Resolved", "deps", deps.String())

	for _, want := range []string{"xorg", "xkbcommon", "glslang", "glew"} {
		if !deps.Contains(want) {
			t.Errorf("dependency set should contain %s", want)
		}
	}
}

// TestXkbcommonCrossWordSize tests that a 64→32 cross build drops xkbcommon
// but keeps xorg
func TestXkbcommonCrossWordSize(t *testing.T) {
	platform := PlatformContext{
		OS:         Linux,
		Arch:       "x86",
		HostArch:   "x86_64",
		BuildType:  Release,
		CrossBuild: true,
	}
	options := mustOptions(t, platform, nil)

	profile, err := LoadProfile("stable")
	if err != nil {
		t.Fatalf("LoadProfile(stable) error = %v", err)
	}

	deps, err := ResolveDependencies(platform, options, profile)
	if err != nil {
		t.Fatalf("ResolveDependencies() error = %v", err)
	}

	if deps.Contains("xkbcommon") {
		t.Errorf("xkbcommon should be excluded on a 64/32 cross build")
	}
	if !deps.Contains("xorg") {
		t.Errorf("xorg should still be included")
	}
}

// TestGlslangOptionPredicate tests the with_glslang gate
func TestGlslangOptionPredicate(t *testing.T) {
	platform := PlatformContext{OS: MacOS, Arch: "aarch64", BuildType: Release}
	options := mustOptions(t, platform, map[string]bool{"with_glslang": false})

	profile, err := LoadProfile("stable")
	if err != nil {
		t.Fatalf("LoadProfile(stable) error = %v", err)
	}

	deps, err := ResolveDependencies(platform, options, profile)
	if err != nil {
		t.Fatalf("ResolveDependencies() error = %v", err)
	}

	if deps.Contains("glslang") {
		t.Errorf("glslang should be excluded when with_glslang=false")
	}
	if deps.Contains("xorg") {
		t.Errorf("xorg should be excluded on macos")
	}
}

// TestOrderIndependence tests that permuting the candidate list yields an
// identical set
func TestOrderIndependence(t *testing.T) {
	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	options := mustOptions(t, platform, nil)

	profile, err := LoadProfile("stable")
	if err != nil {
		t.Fatalf("LoadProfile(stable) error = %v", err)
	}

	reversed := &Profile{Name: profile.Name}
	for i := len(profile.Requires) - 1; i >= 0; i-- {
		reversed.Requires = append(reversed.Requires, profile.Requires[i])
	}

	forward, err := ResolveDependencies(platform, options, profile)
	if err != nil {
		t.Fatalf("ResolveDependencies(forward) error = %v", err)
	}
	backward, err := ResolveDependencies(platform, options, reversed)
	if err != nil {
		t.Fatalf("ResolveDependencies(backward) error = %v", err)
	}

	if !reflect.DeepEqual(forward, backward) {
		t.Errorf("permuted candidate list changed the result:\n  forward  = %s\n  backward = %s",
			forward, backward)
	}
}

// TestConflictingVersions tests that two active entries disagreeing on a
// version fail fast instead of silently picking one
func TestConflictingVersions(t *testing.T) {
	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	options := mustOptions(t, platform, nil)

	profile := &Profile{
		Name: "broken",
		Requires: []ConditionalDependency{
			{Name: "zlib", Version: "1.2.13"},
			{Name: "zlib", Version: "1.2.11"},
		},
	}

	_, err := ResolveDependencies(platform, options, profile)
	if err == nil {
		t.Fatalf("ResolveDependencies() should fail on conflicting versions")
	}
	if !errors.Is(err, descerrors.ErrConflictingDependencyVersion) {
		t.Errorf("error = %v, want ErrConflictingDependencyVersion", err)
	}
}

// TestDuplicateSameVersion tests that repeating an entry with the same
// version is harmless (set semantics)
func TestDuplicateSameVersion(t *testing.T) {
	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	options := mustOptions(t, platform, nil)

	profile := &Profile{
		Name: "dup",
		Requires: []ConditionalDependency{
			{Name: "zlib", Version: "1.2.13"},
			{Name: "zlib", Version: "1.2.13"},
		},
	}

	deps, err := ResolveDependencies(platform, options, profile)
	if err != nil {
		t.Fatalf("ResolveDependencies() error = %v", err)
	}
	if deps.Version("zlib") != "1.2.13" {
		t.Errorf("zlib version = %s, want 1.2.13", deps.Version("zlib"))
	}
}

// TestProfileVariantsStayDistinct tests that the recipe variants remain
// separate named tables
func TestProfileVariantsStayDistinct(t *testing.T) {
	vulkan, err := LoadProfile("vulkan-2021")
	if err != nil {
		t.Fatalf("LoadProfile(vulkan-2021) error = %v", err)
	}

	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	options := mustOptions(t, platform, nil)

	deps, err := ResolveDependencies(platform, options, vulkan)
	if err != nil {
		t.Fatalf("ResolveDependencies() error = %v", err)
	}

	if got := deps.Version("vulkan-loader"); got != "1.2.172" {
		t.Errorf("vulkan-loader version = %q, want 1.2.172", got)
	}
	if deps.Contains("glslang") {
		t.Errorf("the vulkan-2021 variant dropped glslang; it must stay dropped")
	}
	if deps.Contains("xorg") {
		t.Errorf("the vulkan-2021 variant never carried xorg")
	}
}

// TestUnknownProfile tests the error for a missing profile name
func TestUnknownProfile(t *testing.T) {
	_, err := LoadProfile("nightly")
	if err == nil {
		t.Fatalf("LoadProfile(nightly) should fail")
	}
	if !errors.Is(err, descerrors.ErrUnknownProfile) {
		t.Errorf("error = %v, want ErrUnknownProfile", err)
	}
}

// TestProfileNames tests the embedded profile inventory
func TestProfileNames(t *testing.T) {
	names := ProfileNames()
	want := []string{"minimal", "stable", "vulkan-2021"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ProfileNames() = %v, want %v", names, want)
	}
}

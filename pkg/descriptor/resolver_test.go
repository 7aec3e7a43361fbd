// This file contains tests for the resolution pipeline state machine
package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/rendevio/gfxpack/internal/installtree"
	descerrors "github.com/rendevio/gfxpack/pkg/descriptor/errors"
)

// stubTool stands in for the external build generator.
type stubTool struct {
	plan   BuildPlan
	calls  int
	output []byte
	fail   error
}

func (s *stubTool) Run(plan BuildPlan, sourceDir, buildDir, installRoot string) ([]byte, error) {
	s.plan = plan
	s.calls++
	if s.fail != nil {
		return s.output, s.fail
	}
	return s.output, nil
}

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "resolver_test",
		Level: hclog.Trace,
	})
}

// writeSourceTree lays out a minimal engine source tree with a license and
// some third-party headers.
func writeSourceTree(t *testing.T) string {
	t.Helper()
	sourceDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "License.txt"), []byte("Apache-2.0\n"), 0644))

	headers := []string{
		filepath.Join("ThirdParty", "glslang", "glslang", "Public", "ShaderLang.h"),
		filepath.Join("ThirdParty", "SPIRV-Cross", "include", "spirv_cross.hpp"),
	}
	for _, rel := range headers {
		path := filepath.Join(sourceDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("#pragma once\n"), 0644))
	}

	return sourceDir
}

// TestPipelineHappyPath drives the whole pipeline on Linux with a stub tool
func TestPipelineHappyPath(t *testing.T) {
	sourceDir := writeSourceTree(t)
	installRoot := filepath.Join(t.TempDir(), "install")

	profile, err := LoadProfile("stable")
	require.NoError(t, err)

	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	resolver := NewResolver(testLogger(), platform, profile, Config{
		SourceDir:   sourceDir,
		InstallRoot: installRoot,
	})

	options, err := resolver.ResolveOptions(map[string]bool{"shared": false})
	require.NoError(t, err)
	require.True(t, options.Bool(OptionFPIC))
	require.True(t, options.Bool(OptionWithGlslang))

	deps, err := resolver.ResolveDependencies()
	require.NoError(t, err)
	require.True(t, deps.Contains("xorg"))
	require.True(t, deps.Contains("xkbcommon"))

	plan, err := resolver.BuildPlan()
	require.NoError(t, err)
	require.Equal(t, "OFF", plan["DILIGENT_NO_GLSLANG"])

	tool := &stubTool{output: []byte("build ok\n")}
	result, err := resolver.Build(tool)
	require.NoError(t, err)
	require.Equal(t, 1, tool.calls)
	require.Equal(t, plan, tool.plan)
	require.Equal(t, []byte("build ok\n"), result.Output)

	require.NoError(t, resolver.Package())
	require.FileExists(t, filepath.Join(installRoot, "licenses", "License.txt"))
	require.FileExists(t, filepath.Join(installRoot, "ThirdParty", "glslang", "glslang", "Public", "ShaderLang.h"))
	require.FileExists(t, filepath.Join(installRoot, "ThirdParty", "SPIRV-Cross", "include", "spirv_cross.hpp"))
	require.DirExists(t, installtree.LibDir(installRoot, "Release"))
	require.True(t, installtree.IsInstalled(installRoot, "linux", "x86_64", "Release"))

	manifest, err := resolver.ExportManifest()
	require.NoError(t, err)
	require.Contains(t, manifest.SystemLibs, "pthread")
	require.Contains(t, manifest.SystemLibs, "dl")
	for _, lib := range manifest.Libs {
		require.NotRegexp(t, `_64d?$`, lib)
	}
	require.Equal(t, StageManifestExported, resolver.Stage())
}

// TestPipelineOrderEnforced tests that out-of-order calls fail with the
// stage error
func TestPipelineOrderEnforced(t *testing.T) {
	profile, err := LoadProfile("minimal")
	require.NoError(t, err)

	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	resolver := NewResolver(testLogger(), platform, profile, Config{})

	_, err = resolver.ResolveDependencies()
	require.ErrorIs(t, err, descerrors.ErrPipelineStage)

	_, err = resolver.BuildPlan()
	require.ErrorIs(t, err, descerrors.ErrPipelineStage)

	_, err = resolver.ExportManifest()
	require.ErrorIs(t, err, descerrors.ErrPipelineStage)

	// Re-running a completed stage is just as invalid: no retry-in-place.
	_, err = resolver.ResolveOptions(nil)
	require.NoError(t, err)
	_, err = resolver.ResolveOptions(nil)
	require.ErrorIs(t, err, descerrors.ErrPipelineStage)
}

// TestBuildFailureAbortsPipeline tests that a failed external build surfaces
// the tool output and leaves no manifest behind
func TestBuildFailureAbortsPipeline(t *testing.T) {
	sourceDir := writeSourceTree(t)

	profile, err := LoadProfile("minimal")
	require.NoError(t, err)

	platform := PlatformContext{OS: Linux, Arch: "x86_64", BuildType: Release}
	resolver := NewResolver(testLogger(), platform, profile, Config{
		SourceDir:   sourceDir,
		InstallRoot: filepath.Join(t.TempDir(), "install"),
	})

	_, err = resolver.ResolveOptions(nil)
	require.NoError(t, err)
	_, err = resolver.ResolveDependencies()
	require.NoError(t, err)
	_, err = resolver.BuildPlan()
	require.NoError(t, err)

	tool := &stubTool{
		output: []byte("ld: cannot find -lGL\n"),
		fail:   errors.New("exit status 2"),
	}
	_, err = resolver.Build(tool)
	require.ErrorIs(t, err, descerrors.ErrBuildFailed)
	require.Contains(t, err.Error(), "ld: cannot find -lGL")

	// The pipeline is stuck before Built; packaging and export refuse to run.
	require.ErrorIs(t, resolver.Package(), descerrors.ErrPipelineStage)
	_, err = resolver.ExportManifest()
	require.ErrorIs(t, err, descerrors.ErrPipelineStage)
}

// TestRunDryRun tests the Run orchestration stopping before the build
func TestRunDryRun(t *testing.T) {
	report, err := Run(testLogger(), RunConfig{
		OS:        "linux",
		Arch:      "x86_64",
		BuildType: "Release",
		Profile:   "stable",
		DryRun:    true,
	})
	require.NoError(t, err)
	require.Nil(t, report.Manifest)
	require.True(t, report.Dependencies.Contains("xorg"))
	require.Equal(t, "stable", report.Profile)
}

// TestRunFullPipeline tests Run end to end with a stub tool
func TestRunFullPipeline(t *testing.T) {
	sourceDir := writeSourceTree(t)
	installRoot := filepath.Join(t.TempDir(), "install")

	tool := &stubTool{output: []byte("ok\n")}
	report, err := Run(testLogger(), RunConfig{
		OS:          "macos",
		Arch:        "aarch64",
		BuildType:   "Release",
		Profile:     "stable",
		SourceDir:   sourceDir,
		InstallRoot: installRoot,
		Tool:        tool,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Manifest)
	require.Contains(t, report.Manifest.Frameworks, "Cocoa")
	require.Equal(t, 1, tool.calls)
	require.True(t, installtree.IsInstalled(installRoot, "macos", "aarch64", "Release"))
}

// TestRunUnknownOptionFails tests the CLI-level failure path
func TestRunUnknownOptionFails(t *testing.T) {
	_, err := Run(testLogger(), RunConfig{
		OS:        "windows",
		Arch:      "x86_64",
		BuildType: "Release",
		Options:   map[string]bool{"with_vulkan": true},
		DryRun:    true,
	})
	require.ErrorIs(t, err, descerrors.ErrUnknownOption)
}

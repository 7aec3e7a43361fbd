package descriptor

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/rendevio/gfxpack/pkg/pack"
)

// RunConfig is the full input of one CLI-level invocation.
type RunConfig struct {
	OS         string
	Arch       string
	HostArch   string
	Compiler   string
	BuildType  string
	CrossBuild bool

	Options     map[string]bool
	Profile     string
	ProfileFile string

	SourceDir   string
	InstallRoot string
	Generator   string
	Archive     string // "", "tar.gz" or "tar.bz2"
	DryRun      bool

	// Tool overrides the default cmake generator; used by embedders and tests.
	Tool BuildTool
}

// Report is everything a completed (or dry) run produced.
type Report struct {
	Platform     PlatformContext
	Profile      string
	Options      OptionSet
	Dependencies DependencySet
	Plan         BuildPlan
	Manifest     *ExportManifest // nil on dry runs
	ArchivePath  string
}

// Run drives the whole pipeline for one platform/option combination. The
// first failing stage aborts the run; there is no retry and no partial
// manifest.
func Run(logger hclog.Logger, cfg RunConfig) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	buildType, err := ParseBuildType(cfg.BuildType)
	if err != nil {
		return nil, err
	}
	platform := PlatformContext{
		OS:         ParseOS(cfg.OS),
		Arch:       cfg.Arch,
		HostArch:   cfg.HostArch,
		Compiler:   cfg.Compiler,
		BuildType:  buildType,
		CrossBuild: cfg.CrossBuild,
	}
	logger.Info("🎯 Resolving descriptor", "platform", platform.String(), "compiler", cfg.Compiler)

	var profile *Profile
	if cfg.ProfileFile != "" {
		profile, err = LoadProfileFile(cfg.ProfileFile)
	} else {
		profile, err = LoadProfile(cfg.Profile)
	}
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(logger, platform, profile, Config{
		SourceDir:   cfg.SourceDir,
		InstallRoot: cfg.InstallRoot,
	})

	options, err := resolver.ResolveOptions(cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("resolving options: %w", err)
	}

	deps, err := resolver.ResolveDependencies()
	if err != nil {
		return nil, fmt.Errorf("resolving dependencies: %w", err)
	}

	plan, err := resolver.BuildPlan()
	if err != nil {
		return nil, fmt.Errorf("building plan: %w", err)
	}

	report := &Report{
		Platform:     platform,
		Profile:      profile.Name,
		Options:      options,
		Dependencies: deps,
		Plan:         plan,
	}

	if cfg.DryRun {
		logger.Info("💨 Dry run, stopping before the external build")
		return report, nil
	}

	tool := cfg.Tool
	if tool == nil {
		tool = &CMakeGenerator{Generator: cfg.Generator, Logger: logger}
	}
	if _, err := resolver.Build(tool); err != nil {
		return nil, err
	}

	if err := resolver.Package(); err != nil {
		return nil, fmt.Errorf("packaging: %w", err)
	}

	manifest, err := resolver.ExportManifest()
	if err != nil {
		return nil, fmt.Errorf("exporting manifest: %w", err)
	}
	report.Manifest = manifest

	if cfg.Archive != "" {
		name := fmt.Sprintf("gfxpack-%s.%s", platform.String(), cfg.Archive)
		outPath := filepath.Join(filepath.Dir(resolver.cfg.InstallRoot), name)
		if err := pack.ArchiveTree(logger, resolver.cfg.InstallRoot, outPath, cfg.Archive); err != nil {
			return nil, fmt.Errorf("archiving: %w", err)
		}
		report.ArchivePath = outPath
	}

	return report, nil
}

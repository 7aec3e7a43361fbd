package descriptor

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/rendevio/gfxpack/internal/installtree"
	descerrors "github.com/rendevio/gfxpack/pkg/descriptor/errors"
)

// Stage is the resolver's position in the linear pipeline. There is no way
// back: a failed stage terminates the invocation.
type Stage int

const (
	StageUnconfigured Stage = iota
	StageOptionsResolved
	StageDependenciesResolved
	StagePlanBuilt
	StageBuilt
	StagePackaged
	StageManifestExported
)

func (s Stage) String() string {
	switch s {
	case StageUnconfigured:
		return "Unconfigured"
	case StageOptionsResolved:
		return "OptionsResolved"
	case StageDependenciesResolved:
		return "DependenciesResolved"
	case StagePlanBuilt:
		return "PlanBuilt"
	case StageBuilt:
		return "Built"
	case StagePackaged:
		return "Packaged"
	case StageManifestExported:
		return "ManifestExported"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Config carries the filesystem inputs of one resolution.
type Config struct {
	SourceDir   string
	InstallRoot string
}

// Resolver drives one platform/option combination through the pipeline
// Unconfigured → OptionsResolved → DependenciesResolved → PlanBuilt →
// Built → Packaged → ManifestExported. Not safe for concurrent use and not
// reusable: callers running several combinations need one Resolver each.
type Resolver struct {
	logger   hclog.Logger
	platform PlatformContext
	profile  *Profile
	cfg      Config

	stage    Stage
	options  OptionSet
	deps     DependencySet
	plan     BuildPlan
	manifest *ExportManifest
}

// NewResolver creates a resolver in the Unconfigured stage.
func NewResolver(logger hclog.Logger, platform PlatformContext, profile *Profile, cfg Config) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg.InstallRoot == "" {
		cfg.InstallRoot = installtree.DefaultRoot()
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = "."
	}
	return &Resolver{
		logger:   logger,
		platform: platform,
		profile:  profile,
		cfg:      cfg,
		stage:    StageUnconfigured,
	}
}

// Stage returns the resolver's current pipeline stage.
func (r *Resolver) Stage() Stage {
	return r.stage
}

func (r *Resolver) advance(from Stage, op string) error {
	if r.stage != from {
		return fmt.Errorf("%w: %s requires stage %s, resolver is at %s",
			descerrors.ErrPipelineStage, op, from, r.stage)
	}
	return nil
}

// ResolveOptions validates and defaults the requested options.
func (r *Resolver) ResolveOptions(requested map[string]bool) (OptionSet, error) {
	if err := r.advance(StageUnconfigured, "resolve options"); err != nil {
		return OptionSet{}, err
	}

	options, err := ResolveOptions(r.platform, requested)
	if err != nil {
		return OptionSet{}, err
	}

	r.options = options
	r.stage = StageOptionsResolved
	r.logger.Info("🧩 Options resolved", "options", options.String())
	return options, nil
}

// ResolveDependencies evaluates the profile's table against the resolved
// context.
func (r *Resolver) ResolveDependencies() (DependencySet, error) {
	if err := r.advance(StageOptionsResolved, "resolve dependencies"); err != nil {
		return nil, err
	}

	deps, err := ResolveDependencies(r.platform, r.options, r.profile)
	if err != nil {
		return nil, err
	}

	r.deps = deps
	r.stage = StageDependenciesResolved
	r.logger.Info("🧩 Dependencies resolved", "profile", r.profile.Name, "count", len(deps))
	r.logger.Debug("Dependency set", "requires", deps.String())
	return deps, nil
}

// BuildPlan derives the definition map for the external generator.
func (r *Resolver) BuildPlan() (BuildPlan, error) {
	if err := r.advance(StageDependenciesResolved, "build plan"); err != nil {
		return nil, err
	}

	r.plan = BuildPlanFor(r.platform, r.options)
	r.stage = StagePlanBuilt
	r.logger.Info("🗺️ Build plan ready", "definitions", len(r.plan))
	return r.plan, nil
}

// Build hands the plan to the external tool and blocks until it finishes.
// Failure surfaces as ErrBuildFailed carrying the tool's output verbatim.
func (r *Resolver) Build(tool BuildTool) (*BuildResult, error) {
	if err := r.advance(StagePlanBuilt, "build"); err != nil {
		return nil, err
	}

	buildDir := filepath.Join(r.cfg.SourceDir, "build")
	output, err := tool.Run(r.plan, r.cfg.SourceDir, buildDir, r.cfg.InstallRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v\n%s", descerrors.ErrBuildFailed, err, output)
	}

	r.stage = StageBuilt
	r.logger.Info("✅ External build finished")
	return &BuildResult{Output: output}, nil
}

// Package lays out the install tree and performs the license and header
// copies, then marks the tree complete.
func (r *Resolver) Package() error {
	if err := r.advance(StageBuilt, "package"); err != nil {
		return err
	}

	if err := packageTree(r.logger, r.cfg.SourceDir, r.cfg.InstallRoot, r.platform.BuildType); err != nil {
		return err
	}

	marker := installtree.Marker{
		OS:        string(r.platform.OS),
		Arch:      r.platform.Arch,
		BuildType: string(r.platform.BuildType),
		Profile:   r.profile.Name,
	}
	if err := installtree.WriteMarker(r.cfg.InstallRoot, marker); err != nil {
		return fmt.Errorf("writing install marker: %w", err)
	}

	r.stage = StagePackaged
	r.logger.Info("📦 Install tree packaged", "root", r.cfg.InstallRoot)
	return nil
}

// ExportManifest looks up the export tables for the platform. Never called
// on a failed pipeline; a partial manifest does not exist.
func (r *Resolver) ExportManifest() (*ExportManifest, error) {
	if err := r.advance(StagePackaged, "export manifest"); err != nil {
		return nil, err
	}

	manifest, err := ExportManifestFor(r.platform)
	if err != nil {
		return nil, err
	}

	r.manifest = manifest
	r.stage = StageManifestExported
	r.logger.Info("📤 Export manifest ready", "libs", len(manifest.Libs))
	return manifest, nil
}

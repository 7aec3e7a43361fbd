package pkg

import (
	"github.com/hashicorp/go-hclog"

	"github.com/rendevio/gfxpack/pkg/descriptor"
	"github.com/rendevio/gfxpack/pkg/logging"
)

// ResolveDescriptor runs the resolution stages only (options, dependencies,
// plan) and returns the report without touching the external build tool.
func ResolveDescriptor(cfg descriptor.RunConfig) (*descriptor.Report, error) {
	cfg.DryRun = true
	return descriptor.Run(logging.NewLogger("gfxpack", logging.GetLogLevel(), nil), cfg)
}

// BuildAndPackage drives the full pipeline through build, packaging and
// manifest export.
func BuildAndPackage(cfg descriptor.RunConfig) (*descriptor.Report, error) {
	return descriptor.Run(logging.NewLogger("gfxpack", logging.GetLogLevel(), nil), cfg)
}

// BuildAndPackageWithLogger is BuildAndPackage with a caller-supplied logger.
func BuildAndPackageWithLogger(logger hclog.Logger, cfg descriptor.RunConfig) (*descriptor.Report, error) {
	return descriptor.Run(logger, cfg)
}

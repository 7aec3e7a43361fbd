package errors

import "errors"

var (
	// Resolution errors 🧩
	ErrUnknownOption                = errors.New("❌ unknown option")
	ErrUnknownProfile               = errors.New("❌ unknown dependency profile")
	ErrConflictingDependencyVersion = errors.New("❌ conflicting dependency versions")

	// Export errors 📦
	ErrUnsupportedPlatform = errors.New("❌ unsupported platform")

	// Pipeline errors 🚧
	ErrPipelineStage = errors.New("❌ pipeline stage out of order")
	ErrBuildFailed   = errors.New("❌ external build failed")
)

// SPDX-License-Identifier: Apache-2.0
package descriptor

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// BuildTool drives the external configure/build/install step. The tool owns
// its own lifecycle; the resolver blocks until it finishes and only looks at
// success or failure plus the captured output.
type BuildTool interface {
	Run(plan BuildPlan, sourceDir, buildDir, installRoot string) ([]byte, error)
}

// BuildResult carries the external tool's combined output verbatim.
type BuildResult struct {
	Output []byte
}

// CMakeGenerator shells out to cmake for configure, build and install.
type CMakeGenerator struct {
	// Generator is passed as -G when set (e.g. "Ninja").
	Generator string
	Logger    hclog.Logger
}

// Run executes the three cmake phases in order, accumulating their combined
// output. The first non-zero exit aborts; the caller gets everything the tool
// printed up to that point.
func (g *CMakeGenerator) Run(plan BuildPlan, sourceDir, buildDir, installRoot string) ([]byte, error) {
	logger := g.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	configureArgs := []string{"-S", sourceDir, "-B", buildDir}
	if g.Generator != "" {
		configureArgs = append(configureArgs, "-G", g.Generator)
	}
	configureArgs = append(configureArgs, plan.Args()...)

	steps := []struct {
		name string
		args []string
	}{
		{"configure", configureArgs},
		{"build", []string{"--build", buildDir, "--config", plan["CMAKE_BUILD_TYPE"]}},
		{"install", []string{"--install", buildDir, "--prefix", installRoot}},
	}

	var output bytes.Buffer
	for _, step := range steps {
		logger.Info("🔧 Running cmake", "step", step.name, "args", step.args)
		cmd := exec.Command("cmake", step.args...)
		out, err := cmd.CombinedOutput()
		output.Write(out)
		if err != nil {
			return output.Bytes(), fmt.Errorf("cmake %s: %w", step.name, err)
		}
	}

	return output.Bytes(), nil
}

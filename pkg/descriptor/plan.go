package descriptor

import (
	"fmt"
	"sort"
)

// BuildPlan is the definition map handed opaquely to the external build
// generator. Keys follow the engine's CMake cache variables.
type BuildPlan map[string]string

// BuildPlanFor derives the plan from platform and resolved options. Total
// pure function over a valid OptionSet; identical inputs always yield an
// identical plan.
func BuildPlanFor(platform PlatformContext, options OptionSet) BuildPlan {
	plan := BuildPlan{
		// This descriptor targets the cross-platform subset only.
		"DILIGENT_BUILD_TESTS":          "OFF",
		"DILIGENT_BUILD_SAMPLES":        "OFF",
		"DILIGENT_NO_FORMAT_VALIDATION": "ON",
		"DILIGENT_NO_DIRECT3D11":        "ON",
		"DILIGENT_NO_DIRECT3D12":        "ON",
		"DILIGENT_NO_DXC":               "ON",
	}

	plan["DILIGENT_NO_GLSLANG"] = onOff(!options.Bool(OptionWithGlslang))
	plan["BUILD_SHARED_LIBS"] = onOff(options.Bool(OptionShared))
	plan["CMAKE_BUILD_TYPE"] = string(platform.BuildType)

	// Inapplicable fPIC stays out of the plan entirely.
	if options.Applicable(OptionFPIC) {
		plan["CMAKE_POSITION_INDEPENDENT_CODE"] = onOff(options.Bool(OptionFPIC))
	}

	return plan
}

// Args renders the plan as sorted -D definition arguments.
func (p BuildPlan) Args() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("-D%s=%s", k, p[k]))
	}
	return args
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

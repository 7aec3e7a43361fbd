package descriptor

import (
	"fmt"

	descerrors "github.com/rendevio/gfxpack/pkg/descriptor/errors"
)

// ExportManifest describes what an installed package exposes to consumers:
// link libraries in link order, include directories relative to the install
// root, preprocessor defines, and OS-level libraries/frameworks. It is a
// static table lookup over (OS, BuildType) — packaging assumes the build
// succeeded rather than introspecting artifacts.
type ExportManifest struct {
	Libs        []string
	IncludeDirs []string
	Defines     []string
	SystemLibs  []string
	Frameworks  []string
}

type exportKey struct {
	os        OS
	buildType BuildType
}

// Engine DLL import libraries on Windows carry the _64/_64d suffix pair;
// the third-party static archives take a plain d suffix in Debug. The
// DiligentCore aggregate itself is never suffixed.
var exportLibs = map[exportKey][]string{
	{Windows, Release}: {
		"DiligentCore",
		"GraphicsEngineVk_64", "GraphicsEngineOpenGL_64",
		"glslang", "HLSL", "OGLCompiler", "OSDependent",
		"spirv-cross-core", "SPIRV", "SPIRV-Tools", "SPIRV-Tools-opt",
	},
	{Windows, Debug}: {
		"DiligentCore",
		"GraphicsEngineVk_64d", "GraphicsEngineOpenGL_64d",
		"glslangd", "HLSLd", "OGLCompilerd", "OSDependentd",
		"spirv-cross-cored", "SPIRVd", "SPIRV-Toolsd", "SPIRV-Tools-optd",
	},
	{Linux, Release}: {
		"DiligentCore",
		"glslang", "HLSL", "OGLCompiler", "OSDependent",
		"spirv-cross-core", "SPIRV", "SPIRV-Tools", "SPIRV-Tools-opt",
	},
	{Linux, Debug}: {
		"DiligentCore",
		"glslangd", "HLSLd", "OGLCompilerd", "OSDependentd",
		"spirv-cross-cored", "SPIRVd", "SPIRV-Toolsd", "SPIRV-Tools-optd",
	},
	{MacOS, Release}: {
		"DiligentCore",
		"glslang", "HLSL", "OGLCompiler", "OSDependent",
		"spirv-cross-core", "SPIRV", "SPIRV-Tools", "SPIRV-Tools-opt",
	},
	{MacOS, Debug}: {
		"DiligentCore",
		"glslangd", "HLSLd", "OGLCompilerd", "OSDependentd",
		"spirv-cross-cored", "SPIRVd", "SPIRV-Toolsd", "SPIRV-Tools-optd",
	},
}

var exportIncludeDirs = []string{
	"include",
	"ThirdParty",
	"ThirdParty/glslang",
	"ThirdParty/SPIRV-Cross/include",
	"ThirdParty/Vulkan-Headers/include",
}

// The spirv-cross namespace override keeps the bundled copy from colliding
// with a consumer's own spirv-cross.
var exportDefines = []string{
	"SPIRV_CROSS_NAMESPACE_OVERRIDE=diligent_spirv_cross",
}

// ExportManifestFor selects the export tables for the platform. The returned
// manifest owns its slices.
func ExportManifestFor(platform PlatformContext) (*ExportManifest, error) {
	libs, ok := exportLibs[exportKey{platform.OS, platform.BuildType}]
	if !ok {
		return nil, fmt.Errorf("%w: no export table entry for %s/%s",
			descerrors.ErrUnsupportedPlatform, platform.OS, platform.BuildType)
	}

	m := &ExportManifest{
		Libs:        append([]string(nil), libs...),
		IncludeDirs: append([]string(nil), exportIncludeDirs...),
		Defines:     append([]string(nil), exportDefines...),
	}

	switch platform.OS {
	case Linux:
		m.SystemLibs = []string{"dl", "pthread"}
	case MacOS:
		m.SystemLibs = []string{"dl", "pthread"}
		m.Frameworks = []string{"CoreFoundation", "Cocoa"}
	}

	return m, nil
}

package descriptor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
	"github.com/hashicorp/go-hclog"

	"github.com/rendevio/gfxpack/internal/installtree"
)

// licenseFile is the fixed relative path of the engine's license within the
// source tree.
const licenseFile = "License.txt"

// Header patterns copied from the third-party source tree into the install
// tree's ThirdParty subtree, relative paths preserved.
var thirdPartyHeaderGlobs = []string{
	"**/*.h",
	"**/*.hpp",
}

// packageTree performs the two copy steps of the packaging phase: license
// into licenses/ and third-party headers into ThirdParty/. Plain copies, no
// transformation.
func packageTree(logger hclog.Logger, sourceDir, installRoot string, buildType BuildType) error {
	if err := installtree.CheckSpace(installRoot, 0); err != nil {
		return err
	}

	if err := installtree.Create(installRoot, string(buildType)); err != nil {
		return err
	}

	src := filepath.Join(sourceDir, licenseFile)
	dst := filepath.Join(installRoot, "licenses", licenseFile)
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copying license: %w", err)
	}
	logger.Debug("📄 Copied license", "from", src, "to", dst)

	copied, err := copyThirdPartyHeaders(sourceDir, installRoot)
	if err != nil {
		return fmt.Errorf("copying third-party headers: %w", err)
	}
	logger.Info("📦 Copied third-party headers", "count", copied)

	return nil
}

// copyThirdPartyHeaders copies headers matching the fixed glob patterns from
// <sourceDir>/ThirdParty into <installRoot>/ThirdParty.
func copyThirdPartyHeaders(sourceDir, installRoot string) (int, error) {
	srcRoot := filepath.Join(sourceDir, "ThirdParty")
	if _, err := os.Stat(srcRoot); os.IsNotExist(err) {
		return 0, nil
	}

	copied := 0
	for _, pattern := range thirdPartyHeaderGlobs {
		matches, err := doublestar.Glob(filepath.Join(srcRoot, pattern))
		if err != nil {
			return copied, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			rel, err := filepath.Rel(srcRoot, match)
			if err != nil {
				return copied, err
			}
			dst := filepath.Join(installRoot, "ThirdParty", rel)
			if err := copyFile(match, dst); err != nil {
				return copied, err
			}
			copied++
		}
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

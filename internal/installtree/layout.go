// Package installtree manages the on-disk layout of an installed package
// tree: include/, ThirdParty/ and lib/<BuildType>/ under one root.
package installtree

import (
	"fmt"
	"os"
	"path/filepath"
)

// MinFreeBytes is the disk space preflight floor for an install. The engine's
// static archives alone run to a few hundred MB.
const MinFreeBytes = 512 * 1024 * 1024

// DefaultRoot returns the install root used when the caller does not name
// one. GFXPACK_INSTALL_ROOT wins, otherwise ./install.
func DefaultRoot() string {
	if root := os.Getenv("GFXPACK_INSTALL_ROOT"); root != "" {
		return root
	}
	return filepath.Join(".", "install")
}

// Create lays out the install tree skeleton for a build type.
func Create(root string, buildType string) error {
	dirs := []string{
		root,
		filepath.Join(root, "include"),
		filepath.Join(root, "ThirdParty"),
		filepath.Join(root, "licenses"),
		LibDir(root, buildType),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// LibDir returns the library directory for a build type (lib/Debug or
// lib/Release).
func LibDir(root string, buildType string) string {
	return filepath.Join(root, "lib", buildType)
}

// CheckSpace verifies the filesystem holding root has at least need bytes
// free. A zero need uses MinFreeBytes.
func CheckSpace(root string, need int64) error {
	if need == 0 {
		need = MinFreeBytes
	}
	probe := root
	if _, err := os.Stat(probe); err != nil {
		probe = filepath.Dir(root)
	}
	available, err := availableDiskSpace(probe)
	if err != nil {
		// Preflight only; an unsupported statfs must not block the install.
		return nil
	}
	if available < need {
		return fmt.Errorf("insufficient disk space at %s: %d bytes available, %d required",
			root, available, need)
	}
	return nil
}

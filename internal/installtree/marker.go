// Package installtree provides completion markers for install trees
package installtree

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const markerName = ".gfxpack.installed"

// Marker records a completed install so repeated invocations can tell a
// finished tree from an aborted one.
type Marker struct {
	Timestamp time.Time `json:"timestamp"`
	OS        string    `json:"os"`
	Arch      string    `json:"arch"`
	BuildType string    `json:"build_type"`
	Profile   string    `json:"profile"`
}

// WriteMarker marks an install tree as complete.
func WriteMarker(root string, marker Marker) error {
	marker.Timestamp = time.Now().UTC()

	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(root, markerName), data, 0644)
}

// IsInstalled checks whether root holds a complete install matching the
// given platform and build type.
func IsInstalled(root, osName, arch, buildType string) bool {
	data, err := os.ReadFile(filepath.Join(root, markerName))
	if err != nil {
		return false
	}

	var marker Marker
	if err := json.Unmarshal(data, &marker); err != nil {
		return false
	}

	if marker.OS != osName || marker.Arch != arch || marker.BuildType != buildType {
		return false
	}

	// Check that essential directories exist
	essentialDirs := []string{"include", filepath.Join("lib", buildType)}
	for _, dir := range essentialDirs {
		dirPath := filepath.Join(root, dir)
		if info, err := os.Stat(dirPath); err != nil || !info.IsDir() {
			return false
		}
	}

	return true
}

// Clean removes the completion marker from an install tree.
func Clean(root string) error {
	err := os.Remove(filepath.Join(root, markerName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

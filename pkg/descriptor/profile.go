package descriptor

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	descerrors "github.com/rendevio/gfxpack/pkg/descriptor/errors"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// DefaultProfile is used when the caller does not name one.
const DefaultProfile = "stable"

// DependencyCondition gates a profile entry on the resolution context.
// A nil condition always matches. All set fields must hold.
type DependencyCondition struct {
	// OS lists the operating systems the entry applies to.
	OS []string `yaml:"os,omitempty"`
	// Option names a boolean option that must resolve true.
	Option string `yaml:"option,omitempty"`
	// NativeWordSize excludes cross builds between differing 64/32-bit pairs.
	NativeWordSize bool `yaml:"native_word_size,omitempty"`
}

// Matches evaluates the condition against a platform and resolved options.
// Pure; evaluation order across entries never affects the outcome.
func (c *DependencyCondition) Matches(platform PlatformContext, options OptionSet) bool {
	if c == nil {
		return true
	}
	if len(c.OS) > 0 {
		found := false
		for _, name := range c.OS {
			if ParseOS(name) == platform.OS {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.Option != "" && !options.Bool(c.Option) {
		return false
	}
	if c.NativeWordSize && !platform.NativeWordSize() {
		return false
	}
	return true
}

// ConditionalDependency is one candidate entry of a profile's table.
type ConditionalDependency struct {
	Name    string               `yaml:"name"`
	Version string               `yaml:"version"`
	When    *DependencyCondition `yaml:"when,omitempty"`
}

// Profile is a named, versioned dependency table. The recipe variants this
// tool descends from disagreed on versions and presence of several packages;
// each variant ships as its own profile and they are never merged.
type Profile struct {
	Name     string                  `yaml:"name"`
	Requires []ConditionalDependency `yaml:"requires"`
}

// LoadProfile loads one of the embedded profiles by name.
func LoadProfile(name string) (*Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	data, err := profileFS.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)",
			descerrors.ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
	}
	return parseProfile(data)
}

// LoadProfileFile loads a profile from an external YAML file.
func LoadProfileFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("parsing profile: missing name")
	}
	return &p, nil
}

// ProfileNames lists the embedded profiles in sorted order.
func ProfileNames() []string {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

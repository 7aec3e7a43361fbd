package descriptor

import (
	"fmt"
	"sort"
	"strings"

	descerrors "github.com/rendevio/gfxpack/pkg/descriptor/errors"
)

// Dependency is one resolved (package, version) pair. Installation is the
// external package manager's job; this component only declares.
type Dependency struct {
	Name    string
	Version string
}

func (d Dependency) String() string {
	return d.Name + "/" + d.Version
}

// DependencySet is the resolved dependency collection. Set semantics: the
// recipe variants this descends from reordered and commented out entries
// without meaning to change anything, so nothing downstream may depend on
// declaration order.
type DependencySet map[string]string

// Contains reports whether the named package is in the set.
func (s DependencySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Version returns the resolved version for a package, or "".
func (s DependencySet) Version(name string) string {
	return s[name]
}

// Sorted returns the dependencies ordered by package name.
func (s DependencySet) Sorted() []Dependency {
	out := make([]Dependency, 0, len(s))
	for name, version := range s {
		out = append(out, Dependency{Name: name, Version: version})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s DependencySet) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s.Sorted() {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ", ")
}

// ResolveDependencies evaluates every candidate entry of the profile against
// the platform and resolved options and collects the matches. Two active
// entries naming the same package with different versions is a defect in the
// profile, not a tie to break: resolution fails rather than silently picking
// one.
func ResolveDependencies(platform PlatformContext, options OptionSet, profile *Profile) (DependencySet, error) {
	set := make(DependencySet)
	for _, entry := range profile.Requires {
		if !entry.When.Matches(platform, options) {
			continue
		}
		if existing, ok := set[entry.Name]; ok && existing != entry.Version {
			return nil, fmt.Errorf("%w: %s requested as %s and %s (profile %q)",
				descerrors.ErrConflictingDependencyVersion,
				entry.Name, existing, entry.Version, profile.Name)
		}
		set[entry.Name] = entry.Version
	}
	return set, nil
}

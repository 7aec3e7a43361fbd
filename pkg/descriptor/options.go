package descriptor

import (
	"fmt"
	"sort"

	descerrors "github.com/rendevio/gfxpack/pkg/descriptor/errors"
)

// Recognized option names.
const (
	OptionShared      = "shared"
	OptionFPIC        = "fPIC"
	OptionWithGlslang = "with_glslang"
)

// OptionValue is the tri-state (plus unset) value of one option. Earlier
// recipe generations encoded "not applicable" by deleting the key from a
// mapping; OptionInapplicable keeps that signal distinct from both "unset"
// and "false" so callers can still ask which it was.
type OptionValue int

const (
	OptionUnset OptionValue = iota
	OptionFalse
	OptionTrue
	OptionInapplicable
)

func (v OptionValue) String() string {
	switch v {
	case OptionFalse:
		return "false"
	case OptionTrue:
		return "true"
	case OptionInapplicable:
		return "inapplicable"
	default:
		return "unset"
	}
}

var optionDefaults = map[string]OptionValue{
	OptionShared:      OptionFalse,
	OptionFPIC:        OptionTrue,
	OptionWithGlslang: OptionTrue,
}

// OptionSet holds the resolved options of one invocation. Value semantics:
// every OptionSet owns its map, nothing is shared across resolutions.
type OptionSet struct {
	values map[string]OptionValue
}

// Bool reports whether the option is present and true.
func (s OptionSet) Bool(name string) bool {
	return s.values[name] == OptionTrue
}

// Applicable reports whether the option is meaningful for the resolved
// platform/option combination. An inapplicable option is not "false", it
// does not exist as far as the build plan is concerned.
func (s OptionSet) Applicable(name string) bool {
	v, ok := s.values[name]
	return ok && v != OptionInapplicable && v != OptionUnset
}

// Value returns the raw tri-state value of an option.
func (s OptionSet) Value(name string) OptionValue {
	return s.values[name]
}

// Names returns the applicable option names in sorted order.
func (s OptionSet) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		if s.Applicable(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s OptionSet) String() string {
	out := ""
	for i, name := range s.Names() {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%s", name, s.values[name])
	}
	return out
}

// ResolveOptions validates the requested options against the recognized set,
// applies defaults, and removes fPIC where it cannot apply. Removal happens
// in two stages, platform first and shared second, matching the original
// recipe's config/configure split; both are monotonic so their order never
// changes the result.
func ResolveOptions(platform PlatformContext, requested map[string]bool) (OptionSet, error) {
	names := make([]string, 0, len(requested))
	for name := range requested {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := optionDefaults[name]; !ok {
			return OptionSet{}, fmt.Errorf("%w: %q", descerrors.ErrUnknownOption, name)
		}
	}

	values := make(map[string]OptionValue, len(optionDefaults))
	for name, def := range optionDefaults {
		values[name] = def
	}
	for _, name := range names {
		if requested[name] {
			values[name] = OptionTrue
		} else {
			values[name] = OptionFalse
		}
	}

	// Stage 1: platform-conditioned removal.
	if platform.OS == Windows {
		values[OptionFPIC] = OptionInapplicable
	}

	// Stage 2: option-conditioned removal.
	if values[OptionShared] == OptionTrue {
		values[OptionFPIC] = OptionInapplicable
	}

	return OptionSet{values: values}, nil
}

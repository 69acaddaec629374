package bindgen

import (
	"github.com/bmatcuk/doublestar/v4"
)

// classFilter reports whether a class should be emitted. Exclusions win over
// inclusions; with no inclusions every class not excluded passes.
func classFilter(opts *Options) func(string) bool {
	if len(opts.IncludeClasses) == 0 && len(opts.ExcludeClasses) == 0 {
		return nil
	}
	include, exclude := opts.IncludeClasses, opts.ExcludeClasses
	return func(class string) bool {
		if matchAny(exclude, class) {
			return false
		}
		return len(include) == 0 || matchAny(include, class)
	}
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

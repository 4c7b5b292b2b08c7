package nlu

import (
	"strings"

	"hero/internal/registry"
)

// Match returns the first action of category c, in registry order, that has
// any keyword occurring in transcript. transcript must already be lowercase.
func Match(reg *registry.Registry, transcript string, c registry.Category) (registry.ActionSpec, bool, error) {
	entries, err := reg.Lookup(c)
	if err != nil {
		return registry.ActionSpec{}, false, err
	}
	for _, e := range entries {
		if containsAny(transcript, e.Keywords...) {
			return e, true, nil
		}
	}
	return registry.ActionSpec{}, false, nil
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

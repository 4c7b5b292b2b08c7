package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

type Category string

const (
	Open  Category = "open"
	Close Category = "close"
)

func (c Category) Valid() bool {
	return c == Open || c == Close
}

// ActionSpec binds an application to its launch arguments, the keywords
// that select it and the phrase spoken before it runs.
type ActionSpec struct {
	Category Category
	App      string
	Launch   []string
	Keywords []string
	Phrase   string
}

// Registry is an ordered, immutable table of actions. Order is the match
// tie-break, so entries are never sorted or re-keyed.
type Registry struct {
	entries []ActionSpec
}

func New(specs []ActionSpec) (*Registry, error) {
	entries := make([]ActionSpec, 0, len(specs))
	for i, s := range specs {
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, s.App, err)
		}
		s.Launch = slices.Clone(s.Launch)
		s.Keywords = slices.Clone(s.Keywords)
		entries = append(entries, s)
	}
	return &Registry{entries: entries}, nil
}

func validate(s ActionSpec) error {
	if !s.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, s.Category)
	}
	if s.App == "" {
		return errors.New("empty app id")
	}
	if len(s.Launch) == 0 || s.Launch[0] == "" {
		return errors.New("empty launch spec")
	}
	if len(s.Keywords) == 0 {
		return errors.New("no keywords")
	}
	for _, k := range s.Keywords {
		if strings.TrimSpace(k) == "" {
			return errors.New("empty keyword")
		}
		if k != strings.ToLower(k) {
			return fmt.Errorf("keyword %q must be lowercase", k)
		}
	}
	return nil
}

// Lookup returns copies of the entries of one category in insertion order.
func (r *Registry) Lookup(c Category) ([]ActionSpec, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	var out []ActionSpec
	for _, e := range r.entries {
		if e.Category == c {
			e.Launch = slices.Clone(e.Launch)
			e.Keywords = slices.Clone(e.Keywords)
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Registry) Len() int { return len(r.entries) }

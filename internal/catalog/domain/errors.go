package domain

import (
	"strings"

	"github.com/kinomedia/kino/pkg/errors"
)

// Violations accumulates broken validation rules so every rule can be
// reported to the user at once.
type Violations []string

// Add records a broken rule.
func (v *Violations) Add(rule string) {
	*v = append(*v, rule)
}

// Err returns a single aggregated validation error, or nil when no
// rule was broken.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return errors.Validation(strings.Join(v, "; "))
}

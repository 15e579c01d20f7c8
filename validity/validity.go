// Package validity defines the single-method contract every validity
// predicate satisfies (C3). It is deliberately the thinnest package in this
// module: spec.md §1 names domain-specific validity predicates (collision
// checkers) as an external collaborator whose contract the core consumes,
// not something the core implements. Grounded on spec.md §3/§4.3 and
// oxmpl/src/base/validity.rs's StateValidityChecker trait.
package validity

import "github.com/sampleplan/planning/space"

// Checker classifies configurations as valid or invalid. Implementations
// are expected to be stateless from the library's point of view, callable
// from the planner's thread, and free of side effects (spec.md §5).
type Checker interface {
	// IsValid reports whether cfg is an admissible configuration. A
	// checker that cannot decide should return false. The core calls
	// IsValid directly and does not recover a panic raised inside it; such
	// a panic propagates out of the planner call.
	IsValid(cfg space.Configuration) bool
}

// CheckerFunc adapts a plain function to the Checker interface, the way
// http.HandlerFunc adapts a function to http.Handler.
type CheckerFunc func(cfg space.Configuration) bool

// IsValid calls f.
func (f CheckerFunc) IsValid(cfg space.Configuration) bool { return f(cfg) }

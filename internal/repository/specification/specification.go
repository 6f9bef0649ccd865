// Package specification expresses repository queries as small composable
// predicates. Repositories take any number of them and fold each onto the
// statement, so a call site reads as what it filters — a session's messages,
// active destinations under a budget — not as query-building mechanics.
package specification

import "gorm.io/gorm"

// Specification is one composable query predicate.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

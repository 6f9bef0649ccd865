// Package reference maps ordinals and pronouns to a concrete destination id
// using the active-search ledger and the location memory. Resolution never
// errors; a miss is an explicit "not found" the caller must clarify.
package reference

import (
	"regexp"
	"strings"

	"ai-travelmate-be/pkg/store"

	"github.com/google/uuid"
)

// Kind says which memory answered the reference.
type Kind string

const (
	KindOrdinal Kind = "ordinal"
	KindPronoun Kind = "pronoun"
	KindNone    Kind = "none"
)

// Resolution is the outcome of one resolve attempt. Found is false when the
// utterance carries no resolvable reference or the target is out of range.
type Resolution struct {
	ID    uuid.UUID
	Name  string
	Kind  Kind
	Index int // position in the result list for ordinal hits, -1 otherwise
}

var ordinalIndex = map[string]int{
	"first": 0, "1st": 0, "top": 0,
	"second": 1, "2nd": 1,
	"third": 2, "3rd": 2,
	"fourth": 3, "4th": 3,
	"fifth": 4, "5th": 4,
}

var (
	ordinalRe = regexp.MustCompile(`\b(first|second|third|fourth|fifth|1st|2nd|3rd|4th|5th|last|top)\b`)
	numberRe  = regexp.MustCompile(`\b(?:number|option|no\.?)\s*(\d+)\b`)
	pronounRe = regexp.MustCompile(`\b(it|that|there|this place|that place|that one)\b`)
)

// Resolver is stateless; everything it needs arrives in the Context.
type Resolver struct{}

func NewResolver() *Resolver { return &Resolver{} }

// Resolve maps the utterance to a destination id. Ordinals are checked first
// against the current result list, then bare pronouns against the last
// discussed location.
func (r *Resolver) Resolve(text string, ctx *store.Context) (Resolution, bool) {
	if ctx == nil {
		return Resolution{Kind: KindNone, Index: -1}, false
	}
	lower := strings.ToLower(strings.TrimSpace(text))

	if idx, ok := ordinalTarget(lower, len(ctx.ActiveSearch.CurrentResultIDs)); ok {
		ids := ctx.ActiveSearch.CurrentResultIDs
		if idx < 0 || idx >= len(ids) {
			return Resolution{Kind: KindNone, Index: -1}, false
		}
		return Resolution{ID: ids[idx], Kind: KindOrdinal, Index: idx}, true
	}

	if pronounRe.MatchString(lower) {
		if last := ctx.LastDiscussed(); last != nil {
			return Resolution{ID: last.ID, Name: last.Name, Kind: KindPronoun, Index: -1}, true
		}
	}

	return Resolution{Kind: KindNone, Index: -1}, false
}

// ordinalTarget returns the list index the utterance points at. "last" needs
// the list length; an empty list makes every ordinal a miss.
func ordinalTarget(lower string, listLen int) (int, bool) {
	if m := numberRe.FindStringSubmatch(lower); m != nil {
		n := 0
		for _, c := range m[1] {
			n = n*10 + int(c-'0')
		}
		return n - 1, true
	}
	m := ordinalRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	word := m[1]
	if word == "last" {
		return listLen - 1, true
	}
	idx, ok := ordinalIndex[word]
	return idx, ok
}

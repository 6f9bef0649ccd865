// Package extract pulls typed values out of raw utterances: money amounts,
// durations, person counts, known locations, and activity tags. Extraction
// is deterministic and stateless; a value that is not found is simply absent
// from the bag, never an error.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Budget bound types.
const (
	BudgetMax   = "max"
	BudgetMin   = "min"
	BudgetExact = "exact"
	BudgetRange = "range"
)

// Filter modes for the primary activity.
const (
	FilterStrict  = "strict"
	FilterRelaxed = "relaxed"
)

// Budget is a money amount with its bound semantics. Max-type budgets fill
// Max, min-type fill Min, exact fills both, range fills both from vocabulary.
type Budget struct {
	Type string `json:"type"`
	Min  int    `json:"min,omitempty"`
	Max  int    `json:"max,omitempty"`
}

// EntityBag is everything the extractor recognized in one utterance.
type EntityBag struct {
	Budget            *Budget  `json:"budget,omitempty"`
	DurationDays      int      `json:"duration_days,omitempty"`
	PersonCount       int      `json:"person_count,omitempty"`
	Locations         []string `json:"locations,omitempty"`
	Activities        []string `json:"activities,omitempty"`
	PrimaryActivity   string   `json:"primary_activity,omitempty"`
	FilterMode        string   `json:"filter_mode,omitempty"`
	WeatherPreference string   `json:"weather_preference,omitempty"`
	TimeFrame         string   `json:"time_frame,omitempty"`
}

// HasConstraint reports whether the bag carries a narrowing value (budget,
// duration, or group size).
func (b EntityBag) HasConstraint() bool {
	return b.Budget != nil || b.DurationDays > 0 || b.PersonCount > 0
}

var (
	amountKRe    = regexp.MustCompile(`\b(\d+)\s*k\b`)
	amountBareRe = regexp.MustCompile(`\b(\d{4,})\b`)
	amountLakhRe = regexp.MustCompile(`\b(\d+)\s*lakhs?\b`)

	durationDaysRe    = regexp.MustCompile(`\b(\d+)\s*days?\b`)
	durationNightsRe  = regexp.MustCompile(`\b(\d+)\s*nights?\b`)
	durationWeeksRe   = regexp.MustCompile(`\b(\d+)\s*weeks?\b`)
	durationWeekendRe = regexp.MustCompile(`\bweekends?\b`)

	personsNumericRe = regexp.MustCompile(`\b(\d+)\s*(?:people|persons?|travell?ers?|pax)\b`)
	personsGroupRe   = regexp.MustCompile(`\bgroup\s+of\s+(\d+)\b`)
	personsOfUsRe    = regexp.MustCompile(`\b(\d+)\s+of\s+us\b`)
)

type locEntry struct {
	name string
	re   *regexp.Regexp
}

// Extractor holds the location dictionary. Activity and budget vocabularies
// are fixed; locations can be extended from the catalog at startup.
type Extractor struct {
	locations []locEntry
}

func NewExtractor() *Extractor {
	e := &Extractor{}
	e.AddLocations(defaultLocations...)
	return e
}

// AddLocations registers destination names for dictionary lookup. Longest
// names are matched first so multi-word names win over their parts.
func (e *Extractor) AddLocations(names ...string) {
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || e.hasLocation(name) {
			continue
		}
		e.locations = append(e.locations, locEntry{
			name: name,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`),
		})
	}
	sort.SliceStable(e.locations, func(i, j int) bool {
		return len(e.locations[i].name) > len(e.locations[j].name)
	})
}

func (e *Extractor) hasLocation(name string) bool {
	for _, l := range e.locations {
		if l.name == name {
			return true
		}
	}
	return false
}

// Extract parses one utterance into an EntityBag.
func (e *Extractor) Extract(text string) EntityBag {
	lower := strings.ToLower(text)

	bag := EntityBag{
		Budget:       extractBudget(lower),
		DurationDays: extractDuration(lower),
		PersonCount:  extractPersons(lower),
		Locations:    e.extractLocations(lower),
	}
	bag.Activities = extractActivities(lower)
	bag.PrimaryActivity, bag.FilterMode = primaryActivity(lower, bag.Activities)
	bag.WeatherPreference = extractWeatherPreference(lower)
	bag.TimeFrame = extractTimeFrame(lower)
	return bag
}

func extractBudget(lower string) *Budget {
	amount := 0
	if m := amountKRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		amount = n * 1000
	} else if m := amountBareRe.FindStringSubmatch(lower); m != nil {
		amount, _ = strconv.Atoi(m[1])
	} else if m := amountLakhRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		amount = n * 100000
	}

	if amount > 0 {
		switch qualifier(lower) {
		case BudgetMax:
			return &Budget{Type: BudgetMax, Max: amount}
		case BudgetMin:
			return &Budget{Type: BudgetMin, Min: amount}
		default:
			return &Budget{Type: BudgetExact, Min: amount, Max: amount}
		}
	}

	for _, word := range budgetKeywordOrder {
		if containsWord(lower, word) {
			r := budgetKeywords[word]
			return &Budget{Type: BudgetRange, Min: r[0], Max: r[1]}
		}
	}
	return nil
}

func qualifier(lower string) string {
	for _, q := range maxQualifiers {
		if matchQualifier(lower, q) {
			return BudgetMax
		}
	}
	for _, q := range minQualifiers {
		if matchQualifier(lower, q) {
			return BudgetMin
		}
	}
	return BudgetExact
}

// matchQualifier uses word boundaries for single words so that "min" does
// not fire inside "mind"; multi-word qualifiers match as phrases.
func matchQualifier(lower, q string) bool {
	if strings.Contains(q, " ") {
		return strings.Contains(lower, q)
	}
	return containsWord(lower, q)
}

func extractDuration(lower string) int {
	if m := durationDaysRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := durationNightsRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n + 1
	}
	if m := durationWeeksRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * 7
	}
	if durationWeekendRe.MatchString(lower) {
		return 2
	}
	return 0
}

func extractPersons(lower string) int {
	if m := personsNumericRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := personsGroupRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := personsOfUsRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	switch {
	case containsWord(lower, "solo") || containsWord(lower, "alone"):
		return 1
	case containsWord(lower, "couple") || containsWord(lower, "honeymoon"):
		return 2
	case containsWord(lower, "family"):
		return 4
	}
	return 0
}

// extractLocations walks the dictionary longest-name-first and suppresses
// matches overlapping an already claimed span.
func (e *Extractor) extractLocations(lower string) []string {
	var found []string
	var claimed [][2]int
	for _, loc := range e.locations {
		idx := loc.re.FindStringIndex(lower)
		if idx == nil {
			continue
		}
		if overlaps(claimed, idx[0], idx[1]) {
			continue
		}
		claimed = append(claimed, [2]int{idx[0], idx[1]})
		found = append(found, loc.name)
	}
	return found
}

func overlaps(claimed [][2]int, start, end int) bool {
	for _, c := range claimed {
		if start < c[1] && end > c[0] {
			return true
		}
	}
	return false
}

// extractActivities returns matched tag families ordered by first appearance
// in the text, deduplicated.
func extractActivities(lower string) []string {
	type hit struct {
		tag string
		pos int
	}
	var hits []hit
	for tag, words := range activityKeywords {
		best := -1
		for _, w := range words {
			re := wordRe(w)
			if idx := re.FindStringIndex(lower); idx != nil {
				if best == -1 || idx[0] < best {
					best = idx[0]
				}
			}
		}
		if best >= 0 {
			hits = append(hits, hit{tag: tag, pos: best})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].pos == hits[j].pos {
			return hits[i].tag < hits[j].tag
		}
		return hits[i].pos < hits[j].pos
	})
	tags := make([]string, 0, len(hits))
	for _, h := range hits {
		tags = append(tags, h.tag)
	}
	return tags
}

// primaryActivity decides the distinguished category and its filter mode.
// Exactly one matched family, or an explicit "<verb> <category> <object>"
// phrasing, restricts the catalog query to that single tag family.
func primaryActivity(lower string, activities []string) (string, string) {
	if len(activities) == 0 {
		return "", ""
	}
	if len(activities) == 1 {
		return activities[0], FilterStrict
	}
	if tag := explicitCategoryObject(lower); tag != "" {
		return tag, FilterStrict
	}
	return activities[0], FilterRelaxed
}

var explicitCategoryRe = buildExplicitCategoryRe()

func buildExplicitCategoryRe() *regexp.Regexp {
	verbs := strings.Join(searchVerbs, "|")
	objects := strings.Join(searchObjects, "|")
	return regexp.MustCompile(`(?:` + verbs + `)\s+(?:me\s+)?(?:some\s+)?([a-z ]+?)\s+(?:` + objects + `)\b`)
}

func explicitCategoryObject(lower string) string {
	m := explicitCategoryRe.FindStringSubmatch(lower)
	if m == nil {
		return ""
	}
	phrase := strings.TrimSpace(m[1])
	for _, tag := range activityTagOrder {
		for _, w := range activityKeywords[tag] {
			if phrase == w || strings.HasSuffix(phrase, " "+w) {
				return tag
			}
		}
	}
	return ""
}

func extractWeatherPreference(lower string) string {
	for _, pref := range weatherPreferenceOrder {
		for _, w := range weatherPreferences[pref] {
			if containsWord(lower, w) {
				return pref
			}
		}
	}
	return ""
}

func extractTimeFrame(lower string) string {
	for _, tf := range timeFrames {
		if containsWord(lower, tf) {
			return tf
		}
	}
	return ""
}

// HasSearchVerb reports whether the text carries an explicit search verb.
// The intent tiers use it to split filter-only utterances from searches.
func HasSearchVerb(lower string) bool {
	for _, v := range searchVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// HasSearchObject reports whether the text names a topical search noun.
func HasSearchObject(lower string) bool {
	for _, o := range searchObjects {
		if containsWord(lower, o) {
			return true
		}
	}
	return false
}

// wordReCache is filled once at init for every dictionary word; lookups at
// runtime never mutate it, so concurrent extraction is safe.
var wordReCache = map[string]*regexp.Regexp{}

func init() {
	cacheWords := []string{"solo", "alone", "couple", "honeymoon", "family"}
	for _, words := range activityKeywords {
		cacheWords = append(cacheWords, words...)
	}
	for word := range budgetKeywords {
		cacheWords = append(cacheWords, word)
	}
	for _, words := range weatherPreferences {
		cacheWords = append(cacheWords, words...)
	}
	cacheWords = append(cacheWords, timeFrames...)
	cacheWords = append(cacheWords, searchObjects...)
	for _, w := range cacheWords {
		wordReCache[w] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
}

func wordRe(word string) *regexp.Regexp {
	if re, ok := wordReCache[word]; ok {
		return re
	}
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
}

func containsWord(lower, word string) bool {
	return wordRe(word).MatchString(lower)
}

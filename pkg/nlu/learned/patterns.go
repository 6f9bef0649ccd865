// Package learned caches utterance→intent corrections confirmed by user
// feedback. The store is a fixed-capacity LRU: when full, the least recently
// matched pattern is evicted. Lookups are fuzzy so a rephrasing of a
// corrected utterance still hits.
package learned

import (
	"container/list"
	"regexp"
	"strings"
	"sync"
	"time"

	"ai-travelmate-be/pkg/nlu"
)

// DefaultCapacity bounds the pattern store.
const DefaultCapacity = 100

// DefaultThreshold is the minimum similarity for a fuzzy hit.
const DefaultThreshold = 0.85

// Pattern is one learned utterance→intent mapping.
type Pattern struct {
	Normalized string     `json:"normalized"`
	Intent     nlu.Intent `json:"intent"`
	Hits       int        `json:"hits"`
	LearnedAt  time.Time  `json:"learned_at"`
}

// Store is safe for concurrent use across sessions.
type Store struct {
	mu        sync.Mutex
	capacity  int
	threshold float64
	order     *list.List               // front = most recently used
	index     map[string]*list.Element // normalized text -> element holding *Pattern
}

func NewStore(capacity int, threshold float64) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Store{
		capacity:  capacity,
		threshold: threshold,
		order:     list.New(),
		index:     make(map[string]*list.Element),
	}
}

var nonWordRe = regexp.MustCompile(`[^a-z0-9 ]+`)
var spacesRe = regexp.MustCompile(`\s+`)

// Normalize lowercases, strips punctuation, and collapses whitespace so
// trivially different phrasings share one key.
func Normalize(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	lower = nonWordRe.ReplaceAllString(lower, " ")
	return spacesRe.ReplaceAllString(strings.TrimSpace(lower), " ")
}

// Learn records a corrected intent for the utterance. An existing pattern is
// overwritten and promoted; a new one may evict the coldest entry.
func (s *Store) Learn(text string, intent nlu.Intent) {
	key := Normalize(text)
	if key == "" || intent == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.index[key]; ok {
		p := el.Value.(*Pattern)
		p.Intent = intent
		p.LearnedAt = time.Now()
		s.order.MoveToFront(el)
		return
	}
	if s.order.Len() >= s.capacity {
		oldest := s.order.Back()
		if oldest != nil {
			s.order.Remove(oldest)
			delete(s.index, oldest.Value.(*Pattern).Normalized)
		}
	}
	s.index[key] = s.order.PushFront(&Pattern{
		Normalized: key,
		Intent:     intent,
		LearnedAt:  time.Now(),
	})
}

// Reinforce bumps an existing pattern after a confirmed run, creating it
// when absent. Repeated successful turns keep useful patterns warm.
func (s *Store) Reinforce(text string, intent nlu.Intent) {
	key := Normalize(text)
	if key == "" || intent == "" {
		return
	}
	s.mu.Lock()
	if el, ok := s.index[key]; ok {
		p := el.Value.(*Pattern)
		if p.Intent == intent {
			p.Hits++
			s.order.MoveToFront(el)
		}
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.Learn(text, intent)
}

// Forget drops the pattern for an utterance, used on negative feedback.
func (s *Store) Forget(text string) {
	key := Normalize(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.index[key]; ok {
		s.order.Remove(el)
		delete(s.index, key)
	}
}

// Lookup finds the best pattern for the utterance. An exact normalized match
// wins immediately; otherwise the most similar pattern at or above the
// threshold is returned. A hit promotes the pattern.
func (s *Store) Lookup(text string) (nlu.Intent, float64, bool) {
	key := Normalize(text)
	if key == "" {
		return "", 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.index[key]; ok {
		p := el.Value.(*Pattern)
		p.Hits++
		s.order.MoveToFront(el)
		return p.Intent, 1.0, true
	}

	var bestEl *list.Element
	bestScore := 0.0
	for el := s.order.Front(); el != nil; el = el.Next() {
		score := Similarity(key, el.Value.(*Pattern).Normalized)
		if score > bestScore {
			bestScore = score
			bestEl = el
		}
	}
	if bestEl == nil || bestScore < s.threshold {
		return "", 0, false
	}
	p := bestEl.Value.(*Pattern)
	p.Hits++
	s.order.MoveToFront(bestEl)
	return p.Intent, bestScore, true
}

// Len reports the number of stored patterns.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Similarity is a normalized edit-distance ratio in [0,1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

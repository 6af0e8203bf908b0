// Package matcher resolves a spoken product phrase to a catalog product.
//
// Scoring follows the usual approximate-substring model: the phrase is
// aligned against the best-fitting slice of the product name, and the score
// is the number of edits divided by the phrase length plus a small penalty
// for how far into the name the alignment starts. 0 is a perfect match.
package matcher

import (
	"errors"
	"sort"
	"strings"

	"retail_voice_backend/internal/models"
)

// ErrNoMatch is returned when no product scores within the threshold.
var ErrNoMatch = errors.New("could not match product")

const (
	DefaultThreshold = 0.4
	// DefaultDistance is how many characters of start offset cost a full point.
	DefaultDistance = 100
)

// Result is one ranked candidate.
type Result struct {
	Product models.Product
	Score   float64
	index   int
}

type Matcher struct {
	products  []models.Product
	names     [][]rune
	threshold float64
	distance  int
}

type Option func(*Matcher)

func WithThreshold(threshold float64) Option {
	return func(m *Matcher) { m.threshold = threshold }
}

func WithDistance(distance int) Option {
	return func(m *Matcher) {
		if distance > 0 {
			m.distance = distance
		}
	}
}

func New(products []models.Product, opts ...Option) *Matcher {
	m := &Matcher{
		products:  products,
		names:     make([][]rune, len(products)),
		threshold: DefaultThreshold,
		distance:  DefaultDistance,
	}
	for _, opt := range opts {
		opt(m)
	}
	for i, p := range products {
		m.names[i] = []rune(normalize(p.Name))
	}
	return m
}

// Search returns every product within the threshold, best first.
// Ties are broken by the shorter name, then by catalog order.
func (m *Matcher) Search(phrase string) []Result {
	pattern := []rune(normalize(phrase))
	if len(pattern) == 0 {
		return nil
	}

	var results []Result
	for i, name := range m.names {
		score := m.score(pattern, name)
		if score <= m.threshold {
			results = append(results, Result{Product: m.products[i], Score: score, index: i})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		ra, rb := results[a], results[b]
		if ra.Score != rb.Score {
			return ra.Score < rb.Score
		}
		la, lb := len(m.names[ra.index]), len(m.names[rb.index])
		if la != lb {
			return la < lb
		}
		return ra.index < rb.index
	})
	return results
}

// Best returns the top-ranked product or ErrNoMatch.
func (m *Matcher) Best(phrase string) (models.Product, error) {
	results := m.Search(phrase)
	if len(results) == 0 {
		return models.Product{}, ErrNoMatch
	}
	return results[0].Product, nil
}

// score aligns pattern against the best substring of text (Sellers' variant
// of edit distance: starting anywhere in text is free).
func (m *Matcher) score(pattern, text []rune) float64 {
	plen := len(pattern)
	prev := make([]int, plen+1)
	prevStart := make([]int, plen+1)
	cur := make([]int, plen+1)
	curStart := make([]int, plen+1)

	for i := range prev {
		prev[i] = i
	}

	best := m.cost(prev[plen], plen, 0)
	for j := 1; j <= len(text); j++ {
		cur[0], curStart[0] = 0, j
		for i := 1; i <= plen; i++ {
			sub := 1
			if pattern[i-1] == text[j-1] {
				sub = 0
			}
			cur[i], curStart[i] = prev[i-1]+sub, prevStart[i-1]
			if v := cur[i-1] + 1; v < cur[i] {
				cur[i], curStart[i] = v, curStart[i-1]
			}
			if v := prev[i] + 1; v < cur[i] {
				cur[i], curStart[i] = v, prevStart[i]
			}
		}
		if s := m.cost(cur[plen], plen, curStart[plen]); s < best {
			best = s
		}
		prev, cur = cur, prev
		prevStart, curStart = curStart, prevStart
	}
	return best
}

func (m *Matcher) cost(errs, plen, start int) float64 {
	return float64(errs)/float64(plen) + float64(start)/float64(m.distance)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

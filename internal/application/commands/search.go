package commands

import (
	"context"
	"sort"
	"strings"

	"artbind/internal/application"
	"artbind/internal/domain"
)

// SearchResult is a property row with a relevance score
type SearchResult struct {
	PropertyRow
	Score int
}

// SearchCommand fuzzy-matches the property paths of an instance
type SearchCommand struct {
	registry   *application.Registry
	InstanceID string
	Query      string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(registry *application.Registry, instanceID, query string) *SearchCommand {
	return &SearchCommand{
		registry:   registry,
		InstanceID: instanceID,
		Query:      query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	rows, err := NewListPropertiesCommand(c.registry, c.InstanceID).Execute(ctx)
	if err != nil {
		return nil, err
	}

	return FuzzySort(rows, c.Query), nil
}

// Match scores, best first
const (
	scoreSegment       = 200
	scoreSegmentPrefix = 150
	scoreSubstring     = 100
	bonusLeaf          = 25
)

// FuzzyScore rates how well query matches a property path; 0 means no
// match. A query naming a whole segment beats a segment prefix, which beats
// a substring anywhere, which beats an in-order subsequence. Matches in the
// last segment earn a bonus.
func FuzzyScore(path, query string) int {
	path = strings.ToLower(path)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}

	segs := domain.SplitPath(path)
	best := 0
	for i, seg := range segs {
		score := segmentScore(seg, query)
		if score > 0 && i == len(segs)-1 {
			score += bonusLeaf
		}
		best = max(best, score)
	}
	if best > 0 {
		return best
	}

	if strings.Contains(path, query) {
		return scoreSubstring
	}
	return subsequenceScore(path, query)
}

func segmentScore(seg, query string) int {
	switch {
	case seg == query:
		return scoreSegment
	case strings.HasPrefix(seg, query):
		return scoreSegmentPrefix
	case strings.Contains(seg, query):
		return scoreSubstring
	}
	return 0
}

// subsequenceScore matches the query characters in order. Adjacent
// characters and characters that start a word earn bonuses. The result
// stays below scoreSubstring.
func subsequenceScore(path, query string) int {
	score, qi, last := 0, 0, -2
	for i := 0; i < len(path) && qi < len(query); i++ {
		if path[i] != query[qi] {
			continue
		}
		score++
		if last == i-1 {
			score += 5
		}
		if i == 0 || isPathSeparator(path[i-1]) {
			score += 5
		}
		last = i
		qi++
	}
	if qi < len(query) {
		return 0
	}
	return min(score, scoreSubstring-1)
}

func isPathSeparator(b byte) bool {
	return b == '/' || b == '.' || b == '_' || b == '-' || b == ' '
}

// FuzzySort scores rows by path and sorts the matches by relevance. Equal
// scores keep graph order.
func FuzzySort(rows []PropertyRow, query string) []SearchResult {
	var scored []SearchResult
	for _, r := range rows {
		if score := FuzzyScore(r.Path, query); score > 0 {
			scored = append(scored, SearchResult{PropertyRow: r, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

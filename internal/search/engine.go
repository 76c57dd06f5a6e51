package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tchap/go-patricia/v2/patricia"

	"typeahead/internal/domain"
	"typeahead/internal/logger"
)

// Engine binds Filter to one dataset. Results are memoised per query since
// the dataset never changes after load, and each record's items are indexed
// in a prefix trie for TagMatch.
type Engine struct {
	dataset []domain.Record
	cache   *lru.Cache[string, []int] // nil when disabled
	tags    []*patricia.Trie          // by Record.Seq
	log     *log.Logger
}

// NewEngine creates an engine over dataset. Records are renumbered so Seq is
// their dataset position. cacheSize <= 0 disables memoisation.
func NewEngine(dataset []domain.Record, cacheSize int) (*Engine, error) {
	e := &Engine{
		dataset: make([]domain.Record, len(dataset)),
		tags:    make([]*patricia.Trie, len(dataset)),
		log:     logger.New("search"),
	}

	for i, record := range dataset {
		record.Seq = i
		e.dataset[i] = record

		trie := patricia.NewTrie()
		for _, item := range record.Items {
			trie.Insert(patricia.Prefix(strings.ToLower(item)), true)
		}
		e.tags[i] = trie
	}

	if cacheSize > 0 {
		cache, err := lru.New[string, []int](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		e.cache = cache
	}

	e.log.Debug("engine ready", "records", len(e.dataset), "cache", cacheSize)
	return e, nil
}

// Search returns the records matching query in dataset order. Same result
// as Filter over the indexed dataset.
func (e *Engine) Search(query string) []domain.Record {
	lowerQuery := strings.ToLower(query)

	if e.cache != nil {
		if positions, ok := e.cache.Get(lowerQuery); ok {
			e.log.Debug("cache hit", "query", query, "matches", len(positions))
			return e.collect(positions)
		}
	}

	positions := make([]int, 0)
	for i, record := range e.dataset {
		if matchesLower(record, lowerQuery) {
			positions = append(positions, i)
		}
	}

	if e.cache != nil {
		e.cache.Add(lowerQuery, positions)
	}
	e.log.Debug("filtered", "query", query, "matches", len(positions))
	return e.collect(positions)
}

func (e *Engine) collect(positions []int) []domain.Record {
	results := make([]domain.Record, len(positions))
	for i, pos := range positions {
		results[i] = e.dataset[pos]
	}
	return results
}

// TagMatch is the indexed form of the package-level TagMatch. Records not
// produced by this engine fall back to a linear scan.
func (e *Engine) TagMatch(record domain.Record, query string) bool {
	if query == "" {
		return false
	}
	if record.Seq < 0 || record.Seq >= len(e.tags) || e.dataset[record.Seq].ID != record.ID {
		return TagMatch(record, query)
	}
	return e.tags[record.Seq].MatchSubtree(patricia.Prefix(strings.ToLower(query)))
}

package textlayer

import (
	"sort"

	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/search"
)

// Query is a fluent search builder over a loaded session. Each
// configuration method returns a new Query instance, making it safe for
// concurrent use and allowing method chaining.
type Query struct {
	session *Session
	term    string
	config  search.Config
	pages   []int
}

// Query starts a search for a term over the indexed document. The builder
// starts from the session's search configuration.
//
// Example:
//
//	matches := s.Query("income tax").MatchCase(true).FindAll()
func (s *Session) Query(term string) *Query {
	return &Query{
		session: s,
		term:    term,
		config:  s.searchConfig,
	}
}

// clone creates a copy of the Query with a deep copy of the page list.
// This ensures immutability - each chain method returns a new instance.
func (q *Query) clone() *Query {
	newQuery := &Query{
		session: q.session,
		term:    q.term,
		config:  q.config,
	}
	if q.pages != nil {
		newQuery.pages = make([]int, len(q.pages))
		copy(newQuery.pages, q.pages)
	}
	return newQuery
}

// MatchCase requires exact letter case.
//
// Example:
//
//	matches := s.Query("Smith").MatchCase(true).FindAll()
func (q *Query) MatchCase(on bool) *Query {
	newQuery := q.clone()
	newQuery.config.MatchCase = on
	return newQuery
}

// WholeWord requires matches to be bounded by non-word characters
func (q *Query) WholeWord(on bool) *Query {
	newQuery := q.clone()
	newQuery.config.MatchWholeWord = on
	return newQuery
}

// MatchDiacritics requires diacritical marks to match exactly. When off,
// "creme" finds "crème".
func (q *Query) MatchDiacritics(on bool) *Query {
	newQuery := q.clone()
	newQuery.config.MatchDiacritics = on
	return newQuery
}

// AllowOverlapping controls whether overlapping occurrences are all
// reported (the default) or each match consumes its span
func (q *Query) AllowOverlapping(on bool) *Query {
	newQuery := q.clone()
	newQuery.config.AllowOverlappingMatches = on
	return newQuery
}

// OnPage restricts the search to specific pages (1-indexed). Multiple
// calls are cumulative.
//
// Example:
//
//	matches := s.Query("total").OnPage(1, 2).OnPage(7).FindAll()
func (q *Query) OnPage(pages ...int) *Query {
	newQuery := q.clone()
	newQuery.pages = append(newQuery.pages, pages...)
	return newQuery
}

// FindAll runs the search and returns every match in page order. An empty
// or all-whitespace term, or an unloaded session, yields no matches.
func (q *Query) FindAll() []model.Match {
	engine := search.NewEngineWithConfig(q.config)

	pages := q.pages
	if len(pages) == 0 {
		pages = q.session.index.PageNumbers()
	} else {
		pages = append([]int(nil), pages...)
		sort.Ints(pages)
	}

	var matches []model.Match
	seen := make(map[int]bool)
	for _, page := range pages {
		if seen[page] {
			continue
		}
		seen[page] = true
		matches = append(matches, engine.Search(q.session.index.Page(page), q.term)...)
	}
	return matches
}

// First returns the first match in page order, if any
func (q *Query) First() (model.Match, bool) {
	matches := q.FindAll()
	if len(matches) == 0 {
		return model.Match{}, false
	}
	return matches[0], true
}

// Count returns the number of matches
func (q *Query) Count() int {
	return len(q.FindAll())
}

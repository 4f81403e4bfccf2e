// Package listquery derives the visible slice of an in-memory collection
// from filter criteria, a sort order and a page request. Derivation always
// re-runs from the source collection; nothing is memoized between calls.
package listquery

import (
	"slices"
	"strings"
)

// AllSentinel is the choice-criterion value meaning "no constraint".
const AllSentinel = "all"

// Predicate reports whether an item survives one criterion. A nil Predicate
// means the criterion is empty and is skipped.
type Predicate[T any] func(T) bool

type Page struct {
	Number int
	Size   int
}

type Result[T any] struct {
	Items     []T
	Total     int
	PageCount int
}

// TextContains matches by case-insensitive substring containment against
// the extracted field. An empty or whitespace-only query is no constraint.
func TextContains[T any](query string, extract func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(item T) bool {
		return strings.Contains(strings.ToLower(extract(item)), q)
	}
}

// Choice matches by equality against the extracted field. An empty value or
// the "all" sentinel is no constraint.
func Choice[T any](value string, extract func(T) string) Predicate[T] {
	if value == "" || value == AllSentinel {
		return nil
	}
	return func(item T) bool {
		return extract(item) == value
	}
}

// Derive filters, sorts and paginates the collection.
//
// Criteria are combined with logical AND; items keep their source order
// through filtering. Sorting is stable, so ties keep that order. PageCount
// is at least 1 even for an empty result, and a page request beyond
// PageCount yields an empty slice rather than an error.
func Derive[T any](collection []T, criteria []Predicate[T], cmp func(a, b T) int, page Page) Result[T] {
	filtered := make([]T, 0, len(collection))
outer:
	for _, item := range collection {
		for _, match := range criteria {
			if match == nil {
				continue
			}
			if !match(item) {
				continue outer
			}
		}
		filtered = append(filtered, item)
	}

	if cmp != nil {
		slices.SortStableFunc(filtered, cmp)
	}

	total := len(filtered)

	if page.Size <= 0 {
		return Result[T]{Items: filtered, Total: total, PageCount: 1}
	}

	pageCount := (total + page.Size - 1) / page.Size
	if pageCount < 1 {
		pageCount = 1
	}

	number := page.Number
	if number < 1 {
		number = 1
	}

	start := (number - 1) * page.Size
	if start >= total {
		return Result[T]{Items: []T{}, Total: total, PageCount: pageCount}
	}
	end := start + page.Size
	if end > total {
		end = total
	}

	return Result[T]{Items: filtered[start:end], Total: total, PageCount: pageCount}
}

// Package search implements the filter engine: case-insensitive substring
// matching over record fields, plus the highlight and tag helpers used by
// the result rows.
package search

import (
	"strings"

	"typeahead/internal/domain"
)

// Filter returns the records having at least one field that contains query,
// compared case-insensitively. Dataset order is preserved.
func Filter(dataset []domain.Record, query string) []domain.Record {
	results := make([]domain.Record, 0)
	lowerQuery := strings.ToLower(query)
	for _, record := range dataset {
		if matchesLower(record, lowerQuery) {
			results = append(results, record)
		}
	}
	return results
}

// matches reports whether any field of record contains query
func matches(record domain.Record, query string) bool {
	return matchesLower(record, strings.ToLower(query))
}

// fieldContains applies the substring test to a single field value.
// Strings match directly, sequences match if any string element does,
// anything else never matches.
func fieldContains(value any, query string) bool {
	return valueContains(value, strings.ToLower(query))
}

func matchesLower(record domain.Record, lowerQuery string) bool {
	if containsLower(record.ID, lowerQuery) ||
		containsLower(record.Name, lowerQuery) ||
		containsLower(record.Address, lowerQuery) {
		return true
	}
	for _, item := range record.Items {
		if containsLower(item, lowerQuery) {
			return true
		}
	}
	for _, value := range record.Extra {
		if valueContains(value, lowerQuery) {
			return true
		}
	}
	return false
}

func valueContains(value any, lowerQuery string) bool {
	switch v := value.(type) {
	case string:
		return containsLower(v, lowerQuery)
	case []string, []any:
		for _, elem := range domain.StringList(v) {
			if containsLower(elem, lowerQuery) {
				return true
			}
		}
	}
	return false
}

func containsLower(field, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}

// TagMatch reports whether any item starts with query, case-insensitively.
// This is a prefix test while row matching is a substring test; result rows
// use it for the "included in item" annotation and the difference is kept.
func TagMatch(record domain.Record, query string) bool {
	if query == "" {
		return false
	}
	lowerQuery := strings.ToLower(query)
	for _, item := range record.Items {
		if strings.HasPrefix(strings.ToLower(item), lowerQuery) {
			return true
		}
	}
	return false
}

// Package datasource loads the record dataset. The dataset is read once and
// treated as read-only afterwards.
package datasource

import (
	"context"
	"errors"
	"strings"
	"time"

	"typeahead/internal/domain"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Source delivers the dataset
type Source interface {
	Load(ctx context.Context) ([]domain.Record, error)
	String() string
}

// Open picks a source for location: http(s) URLs are fetched, anything else
// is read as a local file
func Open(location string, timeout time.Duration) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location, timeout)
	}
	return NewFileSource(location)
}

// recordsFromMaps converts decoded objects into records, keeping source order
func recordsFromMaps(objects []map[string]any) []domain.Record {
	records := make([]domain.Record, len(objects))
	for i, obj := range objects {
		records[i] = domain.RecordFromMap(obj)
		records[i].Seq = i
	}
	return records
}

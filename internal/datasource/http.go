package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"typeahead/internal/domain"
)

// maxBodyBytes caps the dataset response; the widget is meant for small lists
const maxBodyBytes = 32 << 20

// HTTPSource fetches a JSON array of records from a fixed URL
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for url
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) String() string { return s.url }

// Load performs a single GET and decodes the body
func (s *HTTPSource) Load(ctx context.Context) ([]domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch dataset: unexpected status %s", resp.Status)
	}

	// Records decode tolerantly through Record.UnmarshalJSON
	var records []domain.Record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	for i := range records {
		records[i].Seq = i
	}
	return records, nil
}

package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"typeahead/internal/domain"
)

// FileSource reads records from a local JSON, YAML or msgpack file
type FileSource struct {
	path string
}

// NewFileSource creates a source for path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) String() string { return s.path }

// Load reads and decodes the file according to its extension
func (s *FileSource) Load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	objects, err := decode(filepath.Ext(s.path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return recordsFromMaps(objects), nil
}

func decode(ext string, data []byte) ([]map[string]any, error) {
	var objects []map[string]any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &objects); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &objects); err != nil {
			return nil, err
		}
	case ".msgpack", ".mpk":
		if err := msgpack.Unmarshal(data, &objects); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return objects, nil
}

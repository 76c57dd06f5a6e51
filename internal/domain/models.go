package domain

import (
	"encoding/json"
	"sort"
)

// Record represents one searchable entity in the dataset
type Record struct {
	Seq     int // position in the dataset
	ID      string
	Name    string
	Address string
	Items   []string       // tag-like values
	Extra   map[string]any // unknown keys from the source, kept for matching and display
}

// Known record keys in source documents
const (
	KeyID      = "id"
	KeyName    = "name"
	KeyAddress = "address"
	KeyItems   = "items"
)

// RecordFromMap builds a Record from a decoded JSON/YAML/msgpack object.
// Fields of the wrong kind are treated as absent; nil items are dropped.
func RecordFromMap(m map[string]any) Record {
	var r Record
	for key, value := range m {
		switch key {
		case KeyID:
			r.ID, _ = value.(string)
		case KeyName:
			r.Name, _ = value.(string)
		case KeyAddress:
			r.Address, _ = value.(string)
		case KeyItems:
			r.Items = StringList(value)
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]any)
			}
			r.Extra[key] = value
		}
	}
	return r
}

// StringList returns the string elements of a sequence value. Non-sequence
// values yield nil, non-string elements are skipped.
func StringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// UnmarshalJSON decodes a record tolerantly
func (r *Record) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = RecordFromMap(m)
	return nil
}

// Map returns the record as a generic object, known keys first
func (r Record) Map() map[string]any {
	m := make(map[string]any, 4+len(r.Extra))
	for k, v := range r.Extra {
		m[k] = v
	}
	m[KeyID] = r.ID
	m[KeyName] = r.Name
	m[KeyAddress] = r.Address
	items := r.Items
	if items == nil {
		items = []string{}
	}
	m[KeyItems] = items
	return m
}

// ExtraKeys returns the keys of Extra in a stable order
func (r Record) ExtraKeys() []string {
	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InputMode tracks which input source last changed focus
type InputMode int

const (
	ModePointer InputMode = iota // rest mode, hover may move focus
	ModeKeyboard
)

func (m InputMode) String() string {
	if m == ModeKeyboard {
		return "keyboard"
	}
	return "pointer"
}

// Phase is the visible state of the dropdown
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpenEmpty
	PhaseOpenListing
)

func (p Phase) String() string {
	switch p {
	case PhaseOpenEmpty:
		return "open-empty"
	case PhaseOpenListing:
		return "open-listing"
	default:
		return "closed"
	}
}

// NoFocus marks the absence of a focused result
const NoFocus = -1

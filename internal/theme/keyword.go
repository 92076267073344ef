// Package theme holds the keyword vocabulary used to theme rooms and content.
package theme

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Keyword is an interned theme tag. Two keywords are equal when their IDs are.
type Keyword struct {
	ID string
}

// New creates a keyword from its identifier.
func New(id string) Keyword {
	return Keyword{ID: id}
}

// Keywords converts a list of identifiers into keywords, preserving order.
func Keywords(ids ...string) []Keyword {
	kws := make([]Keyword, len(ids))
	for i, id := range ids {
		kws[i] = New(id)
	}
	return kws
}

// String returns the keyword identifier.
func (k Keyword) String() string {
	return k.ID
}

// IsZero reports whether the keyword has no identifier.
func (k Keyword) IsZero() bool {
	return k.ID == ""
}

// Contains reports whether kw appears in kws.
func Contains(kws []Keyword, kw Keyword) bool {
	for _, k := range kws {
		if k == kw {
			return true
		}
	}
	return false
}

// Join renders keywords as a comma separated list for logs and exports.
func Join(kws []Keyword) string {
	ids := make([]string, len(kws))
	for i, k := range kws {
		ids[i] = k.ID
	}
	return strings.Join(ids, ", ")
}

// MarshalYAML writes the keyword as a plain scalar.
func (k Keyword) MarshalYAML() (interface{}, error) {
	return k.ID, nil
}

// UnmarshalYAML reads the keyword from a plain scalar.
func (k *Keyword) UnmarshalYAML(value *yaml.Node) error {
	var id string
	if err := value.Decode(&id); err != nil {
		return err
	}
	k.ID = strings.TrimSpace(id)
	return nil
}

package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GroupYAML is a named group of keywords in a theme file
type GroupYAML struct {
	Name     string    `yaml:"name"`
	Keywords []Keyword `yaml:"keywords"`
}

// PoolYAML represents the structure of a themes.yaml file
type PoolYAML struct {
	Groups []GroupYAML `yaml:"groups"`
}

// Flatten returns every keyword of every group in file order, skipping blanks
// and duplicates. Order matters: the generator draws from the pool by index.
func (p *PoolYAML) Flatten() []Keyword {
	var pool []Keyword
	seen := make(map[Keyword]bool)
	for _, group := range p.Groups {
		for _, kw := range group.Keywords {
			if kw.IsZero() || seen[kw] {
				continue
			}
			seen[kw] = true
			pool = append(pool, kw)
		}
	}
	return pool
}

// LoadPool loads a theme keyword pool from a YAML file
func LoadPool(path string) ([]Keyword, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes file: %w", err)
	}

	var pool PoolYAML
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse themes YAML: %w", err)
	}

	keywords := pool.Flatten()
	if len(keywords) == 0 {
		return nil, fmt.Errorf("themes file %s defines no keywords", path)
	}
	return keywords, nil
}

package monster

import (
	"fmt"
	"os"
	"sort"

	"github.com/lawnchairsociety/delve/internal/logger"
	"github.com/lawnchairsociety/delve/internal/theme"
	"gopkg.in/yaml.v3"
)

// Definition represents a monster definition from the bestiary YAML file
type Definition struct {
	Name          string          `yaml:"name"`
	Damage        int             `yaml:"damage"`
	Life          int             `yaml:"life"`
	Difficulty    *int            `yaml:"difficulty"`     // Authored difficulty; required for generation
	MaxDifficulty int             `yaml:"max_difficulty"` // Difficulty ceiling (0 = default of 10)
	Keywords      []theme.Keyword `yaml:"keywords"`       // Theme tags matched against room keywords
}

// Bestiary represents the structure of the bestiary.yaml file
type Bestiary struct {
	Monsters map[string]Definition `yaml:"monsters"`
}

// LoadBestiary loads monster definitions from a YAML file
func LoadBestiary(filename string) (*Bestiary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read bestiary file: %w", err)
	}

	var bestiary Bestiary
	if err := yaml.Unmarshal(data, &bestiary); err != nil {
		return nil, fmt.Errorf("failed to parse bestiary YAML: %w", err)
	}

	for id, def := range bestiary.Monsters {
		if def.Name == "" {
			def.Name = id
			bestiary.Monsters[id] = def
		}
		if def.Difficulty == nil {
			// Kept so the generator can reject the pool with a precise error.
			logger.Warning("Bestiary entry has no difficulty",
				"monster_id", id,
				"file", filename)
		}
	}

	return &bestiary, nil
}

// Monster creates a Monster from a definition
func (d Definition) Monster() Monster {
	b := NewBuilder(d.Name, d.Damage, d.Life).Theme(d.Keywords...)
	if d.Difficulty != nil {
		b.Difficulty(*d.Difficulty)
	}
	if d.MaxDifficulty > 0 {
		b.MaxDifficulty(d.MaxDifficulty)
	}
	return b.Spawn()
}

// IDs returns the monster IDs in sorted order
func (b *Bestiary) IDs() []string {
	ids := make([]string, 0, len(b.Monsters))
	for id := range b.Monsters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Pool returns every monster ordered by ID. The order is stable so the same
// bestiary and seed generate the same dungeon.
func (b *Bestiary) Pool() []Monster {
	pool := make([]Monster, 0, len(b.Monsters))
	for _, id := range b.IDs() {
		pool = append(pool, b.Monsters[id].Monster())
	}
	return pool
}

// FindByName returns the monster with the given display name
func (b *Bestiary) FindByName(name string) (Monster, bool) {
	for _, id := range b.IDs() {
		def := b.Monsters[id]
		if def.Name == name {
			return def.Monster(), true
		}
	}
	return Monster{}, false
}

// Resolve returns the named monster from the bestiary. Names the bestiary
// does not know, or a nil bestiary, yield an unrated placeholder carrying
// only the name.
func (b *Bestiary) Resolve(name string) Monster {
	if b != nil {
		if m, ok := b.FindByName(name); ok {
			return m
		}
	}
	return NewBuilder(name, 0, 0).Spawn()
}

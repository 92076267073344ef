// Package monster defines the spawnable creatures placed in dungeon rooms.
// Combat behaviour lives elsewhere; the generator only reads a monster's
// theme and difficulty.
package monster

import (
	"fmt"

	"github.com/lawnchairsociety/delve/internal/evaluate"
	"github.com/lawnchairsociety/delve/internal/theme"
)

var _ evaluate.Evaluable = Monster{}
var _ evaluate.DifficultyScaler = Monster{}

// Monster is a creature template. Values are copied when spawned into a room.
type Monster struct {
	name          string
	damage        int
	life          int
	difficulty    int
	hasDifficulty bool
	maxDifficulty int
	keywords      []theme.Keyword
}

// Name returns the display name
func (m Monster) Name() string {
	return m.name
}

// Damage returns the base damage dealt per hit
func (m Monster) Damage() int {
	return m.damage
}

// Life returns the starting hit points
func (m Monster) Life() int {
	return m.life
}

// Theme returns the monster's keywords
func (m Monster) Theme() []theme.Keyword {
	return m.keywords
}

// Difficulty returns the authored difficulty, if any
func (m Monster) Difficulty() (int, bool) {
	return m.difficulty, m.hasDifficulty
}

// MaxDifficulty returns the ceiling the difficulty is authored against
func (m Monster) MaxDifficulty() int {
	if m.maxDifficulty <= 0 {
		return evaluate.DefaultMaxDifficulty
	}
	return m.maxDifficulty
}

// Clone returns a copy that shares no slices with m
func (m Monster) Clone() Monster {
	c := m
	c.keywords = append([]theme.Keyword(nil), m.keywords...)
	return c
}

// Equal reports whether two monsters describe the same creature
func (m Monster) Equal(other Monster) bool {
	if m.name != other.name || m.damage != other.damage || m.life != other.life ||
		m.difficulty != other.difficulty || m.hasDifficulty != other.hasDifficulty ||
		m.MaxDifficulty() != other.MaxDifficulty() || len(m.keywords) != len(other.keywords) {
		return false
	}
	for i := range m.keywords {
		if m.keywords[i] != other.keywords[i] {
			return false
		}
	}
	return true
}

func (m Monster) String() string {
	if !m.hasDifficulty {
		return fmt.Sprintf("%s (unrated)", m.name)
	}
	return fmt.Sprintf("%s (%d/%d)", m.name, m.difficulty, m.MaxDifficulty())
}

// Builder assembles a Monster. Name, damage and life are required; everything
// else is optional.
type Builder struct {
	monster Monster
}

// NewBuilder starts a monster with its required combat stats
func NewBuilder(name string, damage, life int) *Builder {
	return &Builder{monster: Monster{name: name, damage: damage, life: life}}
}

// Difficulty sets the authored difficulty
func (b *Builder) Difficulty(difficulty int) *Builder {
	b.monster.difficulty = difficulty
	b.monster.hasDifficulty = true
	return b
}

// MaxDifficulty overrides the difficulty ceiling. A ceiling below 1 keeps
// the default of 10.
func (b *Builder) MaxDifficulty(ceiling int) *Builder {
	b.monster.maxDifficulty = ceiling
	return b
}

// Keywords sets the theme keywords
func (b *Builder) Keywords(ids ...string) *Builder {
	b.monster.keywords = theme.Keywords(ids...)
	return b
}

// Theme sets the theme keywords from existing keyword values
func (b *Builder) Theme(kws ...theme.Keyword) *Builder {
	b.monster.keywords = append([]theme.Keyword(nil), kws...)
	return b
}

// Spawn returns a new monster from the builder's current state
func (b *Builder) Spawn() Monster {
	return b.monster.Clone()
}

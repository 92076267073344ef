package generator

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/delve/internal/dice"
	"github.com/lawnchairsociety/delve/internal/monster"
	"github.com/lawnchairsociety/delve/internal/theme"
)

var (
	ErrNoArches          = errors.New("arch count must be at least 1")
	ErrEmptyContentPool  = errors.New("monster pool is empty")
	ErrEmptyKeywordPool  = errors.New("theme keyword pool is empty")
	ErrKeywordCount      = errors.New("keyword counts must be at least 1")
	ErrMissingDifficulty = errors.New("monster has no authored difficulty")
	ErrInvalidRange      = errors.New("invalid count range")
	ErrNoRooms           = errors.New("dungeon has no rooms")
)

// Options configures a Generator. The pools are copied by New and never
// modified afterwards.
type Options struct {
	Monsters []monster.Monster // Content pool rooms are populated from
	Keywords []theme.Keyword   // Theme vocabulary the dungeon draws from

	DungeonKeywordCount int // Keywords drawn for the whole dungeon
	ArchKeywordCount    int // Keywords drawn per arch from the dungeon's
	AreaKeywordCount    int // Keywords drawn per area from the arch's

	ArchCount    int        // Arches define the style of the dungeon
	AreasPerArch dice.Range // Areas define thematic closures
	RoomsPerArea dice.Range // Rooms hold the encounters

	ForceFirstRoomEmpty bool // Keep the entrance free of monsters
}

// Validate checks the options for configuration errors
func (o *Options) Validate() error {
	if o.ArchCount < 1 {
		return ErrNoArches
	}
	if len(o.Monsters) == 0 {
		return ErrEmptyContentPool
	}
	if len(o.Keywords) == 0 {
		return ErrEmptyKeywordPool
	}
	if o.DungeonKeywordCount < 1 || o.ArchKeywordCount < 1 || o.AreaKeywordCount < 1 {
		return fmt.Errorf("%w: dungeon=%d arch=%d area=%d", ErrKeywordCount,
			o.DungeonKeywordCount, o.ArchKeywordCount, o.AreaKeywordCount)
	}
	if err := o.AreasPerArch.Validate(); err != nil {
		return fmt.Errorf("%w: areas per arch: %w", ErrInvalidRange, err)
	}
	if err := o.RoomsPerArea.Validate(); err != nil {
		return fmt.Errorf("%w: rooms per area: %w", ErrInvalidRange, err)
	}
	for i, m := range o.Monsters {
		if _, ok := m.Difficulty(); !ok {
			return fmt.Errorf("%w: %q (pool index %d)", ErrMissingDifficulty, m.Name(), i)
		}
	}
	return nil
}

package dungeon

import (
	"fmt"

	"github.com/lawnchairsociety/delve/internal/monster"
	"github.com/lawnchairsociety/delve/internal/theme"
)

// Room is a single encounter location
type Room struct {
	Keyword    theme.Keyword    // Theme tag the room was generated for
	Difficulty float32          // Normalized difficulty the room was generated for
	Monster    *monster.Monster // Spawned monster, nil for an empty room
}

// NewRoom creates a room with an optional monster
func NewRoom(keyword theme.Keyword, m *monster.Monster) Room {
	return Room{Keyword: keyword, Monster: m}
}

func (r Room) clone() Room {
	if r.Monster != nil {
		m := r.Monster.Clone()
		r.Monster = &m
	}
	return r
}

// IsEmpty reports whether the room has no monster
func (r Room) IsEmpty() bool {
	return r.Monster == nil
}

// Describe returns a one line summary of the room
func (r Room) Describe() string {
	if r.Monster == nil {
		return fmt.Sprintf("[%s] empty (difficulty %.2f)", r.Keyword, r.Difficulty)
	}
	return fmt.Sprintf("[%s] %s (difficulty %.2f)", r.Keyword, r.Monster.Name(), r.Difficulty)
}

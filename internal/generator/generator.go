// Package generator builds dungeons from a seed. The dungeon is split into
// arches, arches into areas and areas into rooms; each level narrows the
// difficulty window and theme vocabulary handed to the next.
package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lawnchairsociety/delve/internal/dice"
	"github.com/lawnchairsociety/delve/internal/dungeon"
	"github.com/lawnchairsociety/delve/internal/evaluate"
	"github.com/lawnchairsociety/delve/internal/logger"
	"github.com/lawnchairsociety/delve/internal/monster"
	"github.com/lawnchairsociety/delve/internal/theme"
)

// NoiseThreshold is the total fitness below which a ranking is treated as
// having no usable signal.
const NoiseThreshold float32 = 0.01

// Generator produces dungeons. It holds no mutable state, so one Generator
// may be shared by concurrent Generate calls.
type Generator struct {
	opts Options
}

type arch struct {
	areas []area
}

type area struct {
	rooms []dungeon.Room
}

// New validates opts and creates a generator owning copies of its pools
func New(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator options: %w", err)
	}

	monsters := make([]monster.Monster, len(opts.Monsters))
	for i, m := range opts.Monsters {
		monsters[i] = m.Clone()
	}
	opts.Monsters = monsters
	opts.Keywords = append([]theme.Keyword(nil), opts.Keywords...)

	return &Generator{opts: opts}, nil
}

// Options returns a copy of the generator's configuration
func (g *Generator) Options() Options {
	opts := g.opts
	opts.Monsters = append([]monster.Monster(nil), g.opts.Monsters...)
	opts.Keywords = append([]theme.Keyword(nil), g.opts.Keywords...)
	return opts
}

// Generate builds a dungeon. The same seed always yields the same dungeon.
// Rooms are laid out as a corridor running east from the entrance.
func (g *Generator) Generate(seed []uint64) (*dungeon.Dungeon, error) {
	rng := dice.NewRoller(seed)

	dungeonKeywords := dice.ChooseMany(rng, g.opts.DungeonKeywordCount, g.opts.Keywords)
	arches := g.generateArches(dungeonKeywords, rng)

	var rooms []dungeon.Room
	for _, a := range arches {
		for _, ar := range a.areas {
			rooms = append(rooms, ar.rooms...)
		}
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: seed %v rolled zero rooms per area", ErrNoRooms, seed)
	}

	if g.opts.ForceFirstRoomEmpty {
		rooms[0].Monster = nil
	}

	d := dungeon.New(rooms)
	for i := 0; i < d.RoomCount()-1; i++ {
		d.CreatePassage(i, dungeon.East, i+1)
	}

	logger.Info("Dungeon generated",
		"seed", seed,
		"arches", len(arches),
		"rooms", d.RoomCount(),
		"keywords", theme.Join(dungeonKeywords))

	return d, nil
}

func (g *Generator) generateArches(keywordPool []theme.Keyword, rng *dice.Roller) []arch {
	arches := make([]arch, 0, g.opts.ArchCount)
	for archIdx := 0; archIdx < g.opts.ArchCount; archIdx++ {
		difficultyMin := float32(archIdx) / float32(g.opts.ArchCount)
		difficultyMax := float32(archIdx+1) / float32(g.opts.ArchCount)

		archKeywords := dice.ChooseMany(rng, g.opts.ArchKeywordCount, keywordPool)
		areaCount := rng.Roll(g.opts.AreasPerArch)

		arches = append(arches, arch{
			areas: g.generateAreas(areaCount, difficultyMin, difficultyMax, archKeywords, rng),
		})
	}
	return arches
}

func (g *Generator) generateAreas(count int, difficultyMin, difficultyMax float32, keywordPool []theme.Keyword, rng *dice.Roller) []area {
	areas := make([]area, 0, count)
	span := difficultyMax - difficultyMin
	for areaIdx := 0; areaIdx < count; areaIdx++ {
		areaMin := difficultyMin + span*(float32(areaIdx)/float32(count))
		areaMax := difficultyMin + span*(float32(areaIdx+1)/float32(count))

		areaKeywords := dice.ChooseMany(rng, g.opts.AreaKeywordCount, keywordPool)
		roomCount := rng.Roll(g.opts.RoomsPerArea)

		areas = append(areas, area{
			rooms: g.generateRooms(roomCount, areaMin, areaMax, areaKeywords, rng),
		})
	}
	return areas
}

// generateRooms raises difficulty across the area so the last room sits at
// difficultyMax.
func (g *Generator) generateRooms(count int, difficultyMin, difficultyMax float32, keywordPool []theme.Keyword, rng *dice.Roller) []dungeon.Room {
	rooms := make([]dungeon.Room, 0, count)
	span := difficultyMax - difficultyMin
	for roomIdx := 0; roomIdx < count; roomIdx++ {
		difficulty := difficultyMin + span*(float32(roomIdx+1)/float32(count))
		keyword := dice.Choose(rng, keywordPool)
		rooms = append(rooms, g.generateRoom(keyword, difficulty, rng))
	}
	return rooms
}

func (g *Generator) generateRoom(keyword theme.Keyword, difficulty float32, rng *dice.Roller) dungeon.Room {
	m := g.generateMonster(difficulty, []theme.Keyword{keyword}, rng)
	room := dungeon.NewRoom(keyword, &m)
	room.Difficulty = difficulty
	return room
}

// generateMonster picks by combined fitness, then by difficulty alone, then
// uniformly, moving on whenever a ranking's total fitness is noise.
func (g *Generator) generateMonster(difficulty float32, roomTheme []theme.Keyword, rng *dice.Roller) monster.Monster {
	byFitness := evaluate.RankByFitness(g.opts.Monsters, difficulty, roomTheme)
	if logger.Enabled(slog.LevelDebug) {
		logger.Debug("Ranked monsters",
			"difficulty", fmt.Sprintf("%.2f", difficulty),
			"theme", theme.Join(roomTheme),
			"ranking", formatRanking(byFitness))
	}

	if total := evaluate.TotalFitness(byFitness); total > NoiseThreshold {
		return pickWeighted(rng, byFitness, total)
	}

	byDifficulty := evaluate.RankByDifficulty(g.opts.Monsters, difficulty)
	if total := evaluate.TotalFitness(byDifficulty); total > NoiseThreshold {
		return pickWeighted(rng, byDifficulty, total)
	}

	return dice.Choose(rng, byDifficulty).Content.Clone()
}

func pickWeighted(rng *dice.Roller, ranked []evaluate.Ranked[monster.Monster], total float32) monster.Monster {
	chosen := dice.ChooseWeighted(rng, ranked, func(r evaluate.Ranked[monster.Monster]) float32 {
		return r.Fitness
	}, total)
	return chosen.Content.Clone()
}

func formatRanking(ranked []evaluate.Ranked[monster.Monster]) string {
	parts := make([]string, len(ranked))
	for i, r := range ranked {
		parts[i] = fmt.Sprintf("%.2f:%s", r.Fitness, r.Content.Name())
	}
	return strings.Join(parts, " ")
}

// Package evaluate scores spawnable content against the theme and difficulty
// of a room. Scores are fitness values where 1 is a perfect match and 0 is
// unsuitable.
package evaluate

import (
	"fmt"
	"math"
	"sort"

	"github.com/lawnchairsociety/delve/internal/theme"
)

// DefaultMaxDifficulty is the authored difficulty ceiling for content that
// does not define its own.
const DefaultMaxDifficulty = 10

// MaxDifficultyDelta is the normalized difficulty distance at which
// difficulty fitness reaches zero.
const MaxDifficultyDelta float32 = 0.2

// Evaluable is content that can be placed in a room.
type Evaluable interface {
	// Theme returns the keywords the content is tagged with.
	Theme() []theme.Keyword
	// Difficulty returns the authored difficulty and whether one was set.
	Difficulty() (int, bool)
}

// DifficultyScaler is implemented by content whose difficulty scale is not
// DefaultMaxDifficulty.
type DifficultyScaler interface {
	MaxDifficulty() int
}

// MaxDifficulty returns the difficulty ceiling for content.
func MaxDifficulty(content Evaluable) int {
	if s, ok := content.(DifficultyScaler); ok {
		return s.MaxDifficulty()
	}
	return DefaultMaxDifficulty
}

// NormalizedDifficulty maps the authored difficulty onto [0, 1]. Content
// without an authored difficulty is invalid input and panics.
func NormalizedDifficulty(content Evaluable) float32 {
	difficulty, ok := content.Difficulty()
	if !ok {
		panic(fmt.Sprintf("evaluate: content %v has no authored difficulty", content))
	}
	return float32(difficulty) / float32(MaxDifficulty(content))
}

// Theme returns the fraction of the room's keywords that the content matches.
// The denominator is the room theme length, so the ratio is not capped at 1.
// An empty room theme is a caller error and panics.
func Theme(content Evaluable, roomTheme []theme.Keyword) float32 {
	if len(roomTheme) == 0 {
		panic("evaluate: room theme must not be empty")
	}

	matching := 0
	for _, kw := range content.Theme() {
		if theme.Contains(roomTheme, kw) {
			matching++
		}
	}
	return float32(matching) / float32(len(roomTheme))
}

// Difficulty falls off linearly from 1 at an exact match to 0 once the
// normalized difficulties are MaxDifficultyDelta apart.
func Difficulty(content Evaluable, roomDifficulty float32) float32 {
	delta := float32(math.Abs(float64(NormalizedDifficulty(content) - roomDifficulty)))
	distance := MaxDifficultyDelta - delta
	if distance > 0 {
		return distance / MaxDifficultyDelta
	}
	return 0
}

// Evaluate returns the weaker of theme and difficulty fitness. Content has to
// fit both to score well.
func Evaluate(content Evaluable, roomDifficulty float32, roomTheme []theme.Keyword) float32 {
	themeFit := Theme(content, roomTheme)
	difficultyFit := Difficulty(content, roomDifficulty)
	return min(themeFit, difficultyFit)
}

// Ranked pairs a content item with its fitness.
type Ranked[T Evaluable] struct {
	Fitness float32
	Content T
}

// RankByFitness scores every item with Evaluate and sorts ascending by
// fitness. Ties keep pool order and NaN scores sort first.
func RankByFitness[T Evaluable](pool []T, roomDifficulty float32, roomTheme []theme.Keyword) []Ranked[T] {
	return rank(pool, func(content T) float32 {
		return Evaluate(content, roomDifficulty, roomTheme)
	})
}

// RankByDifficulty is RankByFitness using difficulty fitness alone.
func RankByDifficulty[T Evaluable](pool []T, roomDifficulty float32) []Ranked[T] {
	return rank(pool, func(content T) float32 {
		return Difficulty(content, roomDifficulty)
	})
}

// TotalFitness sums the fitness of a ranking.
func TotalFitness[T Evaluable](ranked []Ranked[T]) float32 {
	var total float32
	for _, r := range ranked {
		total += r.Fitness
	}
	return total
}

func rank[T Evaluable](pool []T, score func(T) float32) []Ranked[T] {
	ranked := make([]Ranked[T], len(pool))
	for i, content := range pool {
		ranked[i] = Ranked[T]{Fitness: score(content), Content: content}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Fitness, ranked[j].Fitness
		if math.IsNaN(float64(a)) {
			return !math.IsNaN(float64(b))
		}
		return a < b
	})
	return ranked
}

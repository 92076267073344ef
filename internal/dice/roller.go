package dice

import (
	"encoding/binary"
	"math/rand"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Roller is a deterministic random stream. It is not safe for concurrent use;
// each generation run owns its own Roller.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller seeded from an integer sequence. The same
// sequence always yields the same stream.
func NewRoller(seed []uint64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(FoldSeed(seed)))}
}

// FoldSeed hashes an integer sequence down to a single source seed so every
// element of the sequence contributes.
func FoldSeed(seed []uint64) int64 {
	buf := make([]byte, 8*len(seed))
	for i, v := range seed {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	sum := blake2b.Sum256(buf)
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

// SeedFromPhrase turns a human readable phrase into a seed sequence.
func SeedFromPhrase(phrase string) []uint64 {
	sum := blake2b.Sum256([]byte(phrase))
	seed := make([]uint64, len(sum)/8)
	for i := range seed {
		seed[i] = binary.LittleEndian.Uint64(sum[i*8:])
	}
	return seed
}

// ParseSeed reads a seed typed by a user. A list of unsigned integers
// separated by spaces or commas is used as is; anything else is a phrase.
func ParseSeed(s string) []uint64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return SeedFromPhrase(s)
	}
	seed := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return SeedFromPhrase(strings.TrimSpace(s))
		}
		seed = append(seed, v)
	}
	return seed
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (r *Roller) Intn(n int) int {
	return r.rng.Intn(n)
}

// Float32 returns a value in [0, 1).
func (r *Roller) Float32() float32 {
	return r.rng.Float32()
}

// Roll draws a count from rg. It panics on a range with no values; callers
// validate ranges when they are configured.
func (r *Roller) Roll(rg Range) int {
	if rg.Length < 1 {
		panic("dice: roll on empty range " + rg.String())
	}
	return rg.Offset + r.rng.Intn(rg.Length)
}

// Choose picks one element of pool uniformly. It panics on an empty pool.
func Choose[T any](r *Roller, pool []T) T {
	if len(pool) == 0 {
		panic("dice: choose from empty pool")
	}
	return pool[r.rng.Intn(len(pool))]
}

// ChooseMany makes count independent draws from pool. Repeats are allowed.
func ChooseMany[T any](r *Roller, count int, pool []T) []T {
	picked := make([]T, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, Choose(r, pool))
	}
	return picked
}

// ChooseWeighted picks an element with probability proportional to its
// weight, given the precomputed sum of all weights. Elements are walked in
// order; if rounding leaves the draw past the last cumulative weight the pick
// falls back to a uniform choice.
func ChooseWeighted[T any](r *Roller, pool []T, weight func(T) float32, total float32) T {
	pick := r.rng.Float32() * total
	var accumulator float32
	for _, item := range pool {
		accumulator += weight(item)
		if pick < accumulator {
			return item
		}
	}
	return Choose(r, pool)
}

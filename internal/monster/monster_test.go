package monster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lawnchairsociety/delve/internal/evaluate"
	"github.com/lawnchairsociety/delve/internal/theme"
)

func TestBuilder(t *testing.T) {
	m := NewBuilder("goblin", 1, 3).Difficulty(1).Keywords("goblin", "strolneg").Spawn()

	if m.Name() != "goblin" || m.Damage() != 1 || m.Life() != 3 {
		t.Errorf("unexpected stats: %s %d %d", m.Name(), m.Damage(), m.Life())
	}
	d, ok := m.Difficulty()
	if !ok || d != 1 {
		t.Errorf("Difficulty() = %d, %v; want 1, true", d, ok)
	}
	if m.MaxDifficulty() != evaluate.DefaultMaxDifficulty {
		t.Errorf("MaxDifficulty() = %d, want default", m.MaxDifficulty())
	}
	if !theme.Contains(m.Theme(), theme.New("strolneg")) {
		t.Errorf("expected strolneg in theme %v", m.Theme())
	}
}

func TestBuilder_NoDifficulty(t *testing.T) {
	m := NewBuilder("shade", 2, 4).Spawn()
	if _, ok := m.Difficulty(); ok {
		t.Error("monster built without difficulty should report none")
	}
	if m.String() != "shade (unrated)" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestBuilder_NonPositiveCeilingUsesDefault(t *testing.T) {
	for _, ceiling := range []int{0, -5} {
		m := NewBuilder("shade", 1, 1).Difficulty(3).MaxDifficulty(ceiling).Spawn()
		if m.MaxDifficulty() != evaluate.DefaultMaxDifficulty {
			t.Errorf("MaxDifficulty(%d) gave ceiling %d, want %d", ceiling, m.MaxDifficulty(), evaluate.DefaultMaxDifficulty)
		}
	}
}

func TestSpawnDoesNotShareKeywords(t *testing.T) {
	b := NewBuilder("spider", 1, 2).Difficulty(2).Keywords("spider")
	a := b.Spawn()
	c := b.Spawn()

	a.keywords[0] = theme.New("changed")
	if c.Theme()[0] != theme.New("spider") {
		t.Error("spawned monsters should not share keyword storage")
	}
}

func TestNormalizedDifficulty(t *testing.T) {
	goblin := NewBuilder("goblin", 1, 3).Difficulty(1).Spawn()
	demon := NewBuilder("demon", 15, 40).Difficulty(10).Spawn()
	wyrm := NewBuilder("wyrm", 30, 90).Difficulty(10).MaxDifficulty(20).Spawn()

	if got := evaluate.NormalizedDifficulty(goblin); got != 0.1 {
		t.Errorf("goblin = %v, want 0.1", got)
	}
	if got := evaluate.NormalizedDifficulty(demon); got != 1 {
		t.Errorf("demon = %v, want 1", got)
	}
	if got := evaluate.NormalizedDifficulty(wyrm); got != 0.5 {
		t.Errorf("wyrm = %v, want 0.5", got)
	}
}

func TestEqual(t *testing.T) {
	a := NewBuilder("elf", 2, 5).Difficulty(3).Keywords("elf").Spawn()
	b := NewBuilder("elf", 2, 5).Difficulty(3).Keywords("elf").Spawn()
	c := NewBuilder("elf", 2, 5).Difficulty(4).Keywords("elf").Spawn()

	if !a.Equal(b) {
		t.Error("identical monsters should be equal")
	}
	if a.Equal(c) {
		t.Error("monsters with different difficulty should differ")
	}
}

func writeBestiary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bestiary.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBestiary(t *testing.T) {
	path := writeBestiary(t, `monsters:
  goblin:
    damage: 1
    life: 3
    difficulty: 1
    keywords: [goblin]
  servant:
    name: servant of strolneg
    damage: 1
    life: 3
    difficulty: 2
    keywords: [strolneg, goblin]
  giant_spider:
    name: giant spider
    damage: 6
    life: 20
    difficulty: 14
    max_difficulty: 20
    keywords: [spider, giant]
`)

	bestiary, err := LoadBestiary(path)
	if err != nil {
		t.Fatalf("LoadBestiary failed: %v", err)
	}

	pool := bestiary.Pool()
	if len(pool) != 3 {
		t.Fatalf("expected 3 monsters, got %d", len(pool))
	}

	// Ordered by ID: giant_spider, goblin, servant.
	wantNames := []string{"giant spider", "goblin", "servant of strolneg"}
	for i, name := range wantNames {
		if pool[i].Name() != name {
			t.Errorf("pool[%d] = %q, want %q", i, pool[i].Name(), name)
		}
	}

	if pool[0].MaxDifficulty() != 20 {
		t.Errorf("giant spider MaxDifficulty = %d, want 20", pool[0].MaxDifficulty())
	}
	if got := evaluate.NormalizedDifficulty(pool[0]); got != 0.7 {
		t.Errorf("giant spider normalized = %v, want 0.7", got)
	}

	m, ok := bestiary.FindByName("servant of strolneg")
	if !ok {
		t.Fatal("FindByName did not find the servant")
	}
	if !m.Equal(pool[2]) {
		t.Error("FindByName returned a different monster than the pool")
	}
	if _, ok := bestiary.FindByName("dragon"); ok {
		t.Error("FindByName found a monster that does not exist")
	}
}

func TestLoadBestiary_MissingDifficultyKept(t *testing.T) {
	path := writeBestiary(t, `monsters:
  shade:
    damage: 2
    life: 4
`)
	bestiary, err := LoadBestiary(path)
	if err != nil {
		t.Fatalf("LoadBestiary failed: %v", err)
	}

	pool := bestiary.Pool()
	if len(pool) != 1 {
		t.Fatalf("expected 1 monster, got %d", len(pool))
	}
	if _, ok := pool[0].Difficulty(); ok {
		t.Error("shade should have no difficulty")
	}
}

func TestLoadBestiary_Errors(t *testing.T) {
	if _, err := LoadBestiary("/nonexistent/bestiary.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeBestiary(t, "monsters: [not, a, map]\n")
	if _, err := LoadBestiary(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestResolve(t *testing.T) {
	path := writeBestiary(t, `monsters:
  goblin:
    damage: 1
    life: 3
    difficulty: 1
    keywords: [goblin]
`)
	bestiary, err := LoadBestiary(path)
	if err != nil {
		t.Fatalf("LoadBestiary failed: %v", err)
	}

	if m := bestiary.Resolve("goblin"); m.Life() != 3 {
		t.Errorf("Resolve(goblin) life = %d, want 3", m.Life())
	}

	placeholder := bestiary.Resolve("dragon")
	if placeholder.Name() != "dragon" {
		t.Errorf("placeholder name = %q", placeholder.Name())
	}
	if _, ok := placeholder.Difficulty(); ok {
		t.Error("placeholder should be unrated")
	}

	var none *Bestiary
	if m := none.Resolve("goblin"); m.Name() != "goblin" {
		t.Errorf("nil bestiary Resolve = %q", m.Name())
	}
}

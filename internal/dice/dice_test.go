package dice

import (
	"errors"
	"testing"
)

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"fixed", Fixed(3), false},
		{"span", NewRange(2, 4), false},
		{"zero length", NewRange(2, 0), true},
		{"negative length", NewRange(2, -1), true},
		{"negative offset", NewRange(-1, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestRollStaysInRange(t *testing.T) {
	r := NewRoller([]uint64{1, 2, 3, 4})
	rg := NewRange(4, 6)

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n := r.Roll(rg)
		if !rg.Contains(n) {
			t.Fatalf("Roll(%s) = %d, out of range", rg, n)
		}
		seen[n] = true
	}
	if len(seen) != rg.Length {
		t.Errorf("expected all %d values to appear, saw %d", rg.Length, len(seen))
	}
	if rg.Max() != 9 {
		t.Errorf("Max() = %d, want 9", rg.Max())
	}
}

func TestRollFixed(t *testing.T) {
	r := NewRoller([]uint64{7})
	for i := 0; i < 20; i++ {
		if n := r.Roll(Fixed(5)); n != 5 {
			t.Fatalf("Roll(Fixed(5)) = %d", n)
		}
	}
}

func TestRollEmptyRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when rolling an empty range")
		}
	}()
	NewRoller(nil).Roll(NewRange(1, 0))
}

func TestRollerDeterministic(t *testing.T) {
	seed := []uint64{1, 2, 3, 4}
	a := NewRoller(seed)
	b := NewRoller(seed)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("rollers with the same seed diverged at draw %d", i)
		}
	}
}

func TestFoldSeedUsesWholeSequence(t *testing.T) {
	if FoldSeed([]uint64{1, 2, 3, 4}) == FoldSeed([]uint64{1, 2, 3, 5}) {
		t.Error("changing the last seed element should change the folded seed")
	}
	if FoldSeed([]uint64{1, 2}) == FoldSeed([]uint64{2, 1}) {
		t.Error("seed order should matter")
	}
}

func TestSeedFromPhrase(t *testing.T) {
	a := SeedFromPhrase("the crypt of urra")
	b := SeedFromPhrase("the crypt of urra")
	c := SeedFromPhrase("the crypt of iahu")

	if len(a) != 4 {
		t.Fatalf("expected 4 seed words, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same phrase produced different seeds")
		}
	}
	if FoldSeed(a) == FoldSeed(c) {
		t.Error("different phrases produced the same folded seed")
	}
}

func TestChooseMany(t *testing.T) {
	r := NewRoller([]uint64{42})
	pool := []string{"a", "b", "c"}

	picked := ChooseMany(r, 10, pool)
	if len(picked) != 10 {
		t.Fatalf("expected 10 picks, got %d", len(picked))
	}
	for _, p := range picked {
		if p != "a" && p != "b" && p != "c" {
			t.Errorf("picked %q which is not in the pool", p)
		}
	}

	if got := ChooseMany(r, 0, pool); len(got) != 0 {
		t.Errorf("expected no picks, got %v", got)
	}
}

func TestChooseEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when choosing from an empty pool")
		}
	}()
	Choose(NewRoller(nil), []int{})
}

type weighted struct {
	w    float32
	name string
}

func TestChooseWeighted_OnlyPositiveWeightsPicked(t *testing.T) {
	r := NewRoller([]uint64{9})
	pool := []weighted{{0, "never"}, {1, "always"}, {0, "never"}}
	weight := func(w weighted) float32 { return w.w }

	for i := 0; i < 200; i++ {
		got := ChooseWeighted(r, pool, weight, 1)
		if got.name != "always" {
			t.Fatalf("picked zero-weight item %q", got.name)
		}
	}
}

func TestChooseWeighted_Proportional(t *testing.T) {
	r := NewRoller([]uint64{3})
	pool := []weighted{{1, "rare"}, {3, "common"}}
	weight := func(w weighted) float32 { return w.w }

	counts := make(map[string]int)
	for i := 0; i < 4000; i++ {
		counts[ChooseWeighted(r, pool, weight, 4).name]++
	}
	if counts["common"] < 2600 || counts["common"] > 3400 {
		t.Errorf("common picked %d/4000 times, expected about 3000", counts["common"])
	}
}

func TestChooseWeighted_FallsBackWhenTotalOvershoots(t *testing.T) {
	r := NewRoller([]uint64{11})
	pool := []weighted{{0, "a"}, {0, "b"}}
	weight := func(w weighted) float32 { return w.w }

	// The cumulative weight never exceeds the draw, so the uniform fallback picks.
	for i := 0; i < 20; i++ {
		got := ChooseWeighted(r, pool, weight, 10)
		if got.name != "a" && got.name != "b" {
			t.Fatalf("unexpected pick %q", got.name)
		}
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		input string
		want  []uint64
	}{
		{"42", []uint64{42}},
		{"1, 2, 3", []uint64{1, 2, 3}},
		{"1 2\t3", []uint64{1, 2, 3}},
		{"urra's lair", SeedFromPhrase("urra's lair")},
		{"  urra's lair ", SeedFromPhrase("urra's lair")},
		{"1 two 3", SeedFromPhrase("1 two 3")},
		{"-1", SeedFromPhrase("-1")},
	}

	for _, tt := range tests {
		got := ParseSeed(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("ParseSeed(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseSeed(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

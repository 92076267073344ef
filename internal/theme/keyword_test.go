package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKeywordEquality(t *testing.T) {
	a := New("goblin")
	b := Keyword{ID: "goblin"}
	c := New("elf")

	if a != b {
		t.Errorf("keywords with the same ID should be equal")
	}
	if a == c {
		t.Errorf("keywords with different IDs should differ")
	}

	set := map[Keyword]int{a: 1}
	if set[b] != 1 {
		t.Errorf("keyword lookup by equal value failed")
	}
}

func TestContains(t *testing.T) {
	kws := Keywords("spider", "goblin")

	if !Contains(kws, New("goblin")) {
		t.Error("expected goblin to be contained")
	}
	if Contains(kws, New("giant")) {
		t.Error("did not expect giant to be contained")
	}
	if Contains(nil, New("goblin")) {
		t.Error("nil list contains nothing")
	}
}

func TestJoin(t *testing.T) {
	got := Join(Keywords("iahu", "urra"))
	if got != "iahu, urra" {
		t.Errorf("Join = %q, want %q", got, "iahu, urra")
	}
}

func TestLoadPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	content := `groups:
  - name: gods
    keywords: [strolneg, zarad-dul, iahu]
  - name: creatures
    keywords: [spider, goblin, " elf ", iahu, ""]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	pool, err := LoadPool(path)
	if err != nil {
		t.Fatalf("LoadPool failed: %v", err)
	}

	want := Keywords("strolneg", "zarad-dul", "iahu", "spider", "goblin", "elf")
	if len(pool) != len(want) {
		t.Fatalf("got %d keywords, want %d: %v", len(pool), len(want), pool)
	}
	for i := range want {
		if pool[i] != want[i] {
			t.Errorf("pool[%d] = %q, want %q", i, pool[i], want[i])
		}
	}
}

func TestLoadPool_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	if err := os.WriteFile(path, []byte("groups: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPool(path); err == nil {
		t.Error("expected an error for a pool with no keywords")
	}
}

func TestLoadPool_MissingFile(t *testing.T) {
	if _, err := LoadPool("/nonexistent/themes.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

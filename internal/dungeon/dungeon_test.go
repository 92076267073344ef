package dungeon

import (
	"testing"

	"github.com/lawnchairsociety/delve/internal/monster"
	"github.com/lawnchairsociety/delve/internal/theme"
)

func makeRooms(ids ...string) []Room {
	rooms := make([]Room, len(ids))
	for i, id := range ids {
		rooms[i] = NewRoom(theme.New(id), nil)
	}
	return rooms
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewDungeon(t *testing.T) {
	d := New(makeRooms("A", "B", "C"))

	if d.RoomCount() != 3 {
		t.Fatalf("RoomCount() = %d, want 3", d.RoomCount())
	}
	if len(d.passages) != d.RoomCount() {
		t.Errorf("passage table has %d entries for %d rooms", len(d.passages), d.RoomCount())
	}
	if d.FirstRoom().Keyword != theme.New("A") {
		t.Errorf("FirstRoom() = %v", d.FirstRoom().Keyword)
	}
	for i := 0; i < d.RoomCount(); i++ {
		if len(d.Exits(i)) != 0 {
			t.Errorf("room %d should start without exits", i)
		}
	}
}

func TestPassageWorks(t *testing.T) {
	d := New(makeRooms("A", "B"))
	d.CreatePassage(0, East, 1)

	roomB, ok := d.AdjacentRoom(0, East)
	if !ok || roomB.Keyword != d.Room(1).Keyword {
		t.Errorf("east of A = %v, %v; want B", roomB.Keyword, ok)
	}
	roomA, ok := d.AdjacentRoom(1, West)
	if !ok || roomA.Keyword != d.Room(0).Keyword {
		t.Errorf("west of B = %v, %v; want A", roomA.Keyword, ok)
	}
}

func TestPassageSymmetry(t *testing.T) {
	d := New(makeRooms("A", "B", "C", "D"))
	links := []struct {
		src  int
		dir  CompassPoint
		dest int
	}{
		{0, East, 1},
		{1, South, 2},
		{2, West, 3},
		{3, North, 0},
	}
	for _, l := range links {
		d.CreatePassage(l.src, l.dir, l.dest)
	}

	for _, l := range links {
		back, ok := d.Adjacent(l.dest, l.dir.Opposite())
		if !ok || back != l.src {
			t.Errorf("Adjacent(%d, %s) = %d, %v; want %d", l.dest, l.dir.Opposite(), back, ok, l.src)
		}
	}
}

func TestMissingPassage(t *testing.T) {
	d := New(makeRooms("A", "B"))
	d.CreatePassage(0, East, 1)

	if _, ok := d.Adjacent(0, North); ok {
		t.Error("no passage north should exist")
	}
	if _, ok := d.AdjacentRoom(1, East); ok {
		t.Error("no passage east of the last room should exist")
	}
}

func TestCreatePassageIdempotent(t *testing.T) {
	d := New(makeRooms("A", "B"))
	d.CreatePassage(0, East, 1)
	d.CreatePassage(0, East, 1)

	if len(d.Exits(0)) != 1 || len(d.Exits(1)) != 1 {
		t.Errorf("repeated passage creation changed exit counts: %v %v", d.Exits(0), d.Exits(1))
	}
}

func TestCreatePassageLastWriteWins(t *testing.T) {
	d := New(makeRooms("A", "B", "C"))
	d.CreatePassage(0, North, 1)
	d.CreatePassage(0, North, 2)

	dest, _ := d.Adjacent(0, North)
	if dest != 2 {
		t.Errorf("north of A = %d, want 2", dest)
	}
	// The earlier inverse link is left in place.
	if back, ok := d.Adjacent(1, South); !ok || back != 0 {
		t.Errorf("south of B = %d, %v; want 0", back, ok)
	}
}

func TestCreatePassageAnyGeometry(t *testing.T) {
	d := New(makeRooms("A"))
	d.CreatePassage(0, North, 0)

	if dest, ok := d.Adjacent(0, South); !ok || dest != 0 {
		t.Errorf("self loop should install both directions, got %d %v", dest, ok)
	}
}

func TestExitsIsCopy(t *testing.T) {
	d := New(makeRooms("A", "B"))
	d.CreatePassage(0, East, 1)

	exits := d.Exits(0)
	exits[North] = 1
	if _, ok := d.Adjacent(0, North); ok {
		t.Error("mutating Exits() result changed the dungeon")
	}
}

func TestWalk(t *testing.T) {
	d := New(makeRooms("A", "B", "C", "D"))
	for i := 0; i < 3; i++ {
		d.CreatePassage(i, East, i+1)
	}

	path := d.Walk(0, East)
	if len(path) != 4 || path[3] != 3 {
		t.Errorf("Walk(0, East) = %v", path)
	}
	back := d.Walk(3, West)
	if len(back) != 4 || back[3] != 0 {
		t.Errorf("Walk(3, West) = %v", back)
	}
	if stay := d.Walk(1, North); len(stay) != 1 {
		t.Errorf("Walk without passages = %v", stay)
	}
}

func TestWalkStopsOnCycle(t *testing.T) {
	d := New(makeRooms("A", "B"))
	d.CreatePassage(0, East, 1)
	d.CreatePassage(1, East, 0)

	if path := d.Walk(0, East); len(path) != 2 {
		t.Errorf("Walk around a cycle = %v, want 2 rooms", path)
	}
}

func TestRoomOutOfRangePanics(t *testing.T) {
	d := New(makeRooms("A"))

	expectPanic(t, "Room(1)", func() { d.Room(1) })
	expectPanic(t, "Room(-1)", func() { d.Room(-1) })
	expectPanic(t, "Adjacent(5)", func() { d.Adjacent(5, East) })
	expectPanic(t, "CreatePassage to 3", func() { d.CreatePassage(0, East, 3) })
}

func TestFirstRoomEmptyDungeonPanics(t *testing.T) {
	expectPanic(t, "FirstRoom", func() { New(nil).FirstRoom() })
}

func TestRoomRefEditsInPlace(t *testing.T) {
	goblin := monster.NewBuilder("goblin", 1, 3).Difficulty(1).Spawn()
	d := New([]Room{NewRoom(theme.New("goblin"), &goblin)})

	if d.Room(0).IsEmpty() {
		t.Fatal("room should hold the goblin")
	}
	d.RoomRef(0).Monster = nil
	if !d.Room(0).IsEmpty() {
		t.Error("clearing through RoomRef should empty the room")
	}
}

func TestRoomsIsCopy(t *testing.T) {
	d := New(makeRooms("A"))
	rooms := d.Rooms()
	rooms[0].Keyword = theme.New("Z")
	if d.Room(0).Keyword != theme.New("A") {
		t.Error("mutating Rooms() result changed the dungeon")
	}
}

func TestRoomAccessorsCopyMonster(t *testing.T) {
	goblin := monster.NewBuilder("goblin", 1, 3).Difficulty(1).Keywords("goblin").Spawn()
	dragon := monster.NewBuilder("dragon", 20, 90).Difficulty(10).Spawn()
	d := New([]Room{
		NewRoom(theme.New("goblin"), &goblin),
		NewRoom(theme.New("giant"), nil),
	})
	d.CreatePassage(1, West, 0)

	*d.Rooms()[0].Monster = dragon
	*d.Room(0).Monster = dragon
	*d.FirstRoom().Monster = dragon
	if adjacent, ok := d.AdjacentRoom(1, West); ok {
		*adjacent.Monster = dragon
	}

	if got := d.Room(0).Monster.Name(); got != "goblin" {
		t.Errorf("room 0 monster = %q, want goblin", got)
	}
	if d.Room(1).Monster != nil {
		t.Error("empty room should stay empty")
	}
}

func TestDescribe(t *testing.T) {
	goblin := monster.NewBuilder("goblin", 1, 3).Difficulty(1).Spawn()
	full := Room{Keyword: theme.New("goblin"), Difficulty: 0.25, Monster: &goblin}
	empty := Room{Keyword: theme.New("iahu"), Difficulty: 0.5}

	if got := full.Describe(); got != "[goblin] goblin (difficulty 0.25)" {
		t.Errorf("Describe() = %q", got)
	}
	if got := empty.Describe(); got != "[iahu] empty (difficulty 0.50)" {
		t.Errorf("Describe() = %q", got)
	}
}

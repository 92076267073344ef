// Package dungeon holds generated rooms and the passages between them.
package dungeon

import "fmt"

// Passages maps the directions leaving a room to the destination room index
type Passages map[CompassPoint]int

// Dungeon is an index-addressed list of rooms with a parallel passage table.
// The room count is fixed at construction.
type Dungeon struct {
	rooms    []Room
	passages []Passages
}

// New creates a dungeon without passages. The dungeon takes ownership of
// rooms.
func New(rooms []Room) *Dungeon {
	d := &Dungeon{
		rooms:    rooms,
		passages: make([]Passages, len(rooms)),
	}
	for i := range d.passages {
		d.passages[i] = make(Passages)
	}
	return d
}

// RoomCount returns the number of rooms
func (d *Dungeon) RoomCount() int {
	return len(d.rooms)
}

// Rooms returns a copy of the room list. Monsters are copied too.
func (d *Dungeon) Rooms() []Room {
	rooms := make([]Room, len(d.rooms))
	for i, r := range d.rooms {
		rooms[i] = r.clone()
	}
	return rooms
}

// FirstRoom returns the entrance. A dungeon without rooms is a configuration
// error and panics.
func (d *Dungeon) FirstRoom() Room {
	if len(d.rooms) == 0 {
		panic("dungeon: dungeon must have a room")
	}
	return d.rooms[0].clone()
}

// Room returns a copy of the room at index. It panics if index is out of
// range.
func (d *Dungeon) Room(index int) Room {
	d.checkIndex(index)
	return d.rooms[index].clone()
}

// RoomRef returns a pointer to the room at index for in-place edits.
func (d *Dungeon) RoomRef(index int) *Room {
	d.checkIndex(index)
	return &d.rooms[index]
}

// Adjacent returns the index of the room reached by leaving source in dir
func (d *Dungeon) Adjacent(source int, dir CompassPoint) (int, bool) {
	d.checkIndex(source)
	dest, ok := d.passages[source][dir]
	return dest, ok
}

// AdjacentRoom returns the room reached by leaving source in dir
func (d *Dungeon) AdjacentRoom(source int, dir CompassPoint) (Room, bool) {
	dest, ok := d.Adjacent(source, dir)
	if !ok {
		return Room{}, false
	}
	return d.rooms[dest].clone(), true
}

// Exits returns a copy of the passages leaving a room
func (d *Dungeon) Exits(index int) Passages {
	d.checkIndex(index)
	exits := make(Passages, len(d.passages[index]))
	for dir, dest := range d.passages[index] {
		exits[dir] = dest
	}
	return exits
}

// CreatePassage links source to destination in dir and destination back to
// source in the opposite direction. An existing passage in either slot is
// overwritten; no geometric consistency is enforced.
func (d *Dungeon) CreatePassage(source int, dir CompassPoint, destination int) {
	d.checkIndex(source)
	d.checkIndex(destination)
	d.passages[source][dir] = destination
	d.passages[destination][dir.Opposite()] = source
}

// Walk follows passages in dir starting at start and returns the visited
// room indexes, start included. It stops at a dead end or before revisiting
// a room.
func (d *Dungeon) Walk(start int, dir CompassPoint) []int {
	d.checkIndex(start)
	path := []int{start}
	visited := map[int]bool{start: true}
	current := start
	for {
		next, ok := d.passages[current][dir]
		if !ok || visited[next] {
			return path
		}
		visited[next] = true
		path = append(path, next)
		current = next
	}
}

func (d *Dungeon) checkIndex(index int) {
	if index < 0 || index >= len(d.rooms) {
		panic(fmt.Sprintf("dungeon: room index %d out of range [0, %d)", index, len(d.rooms)))
	}
}

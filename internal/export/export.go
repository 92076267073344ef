// Package export writes generated dungeons to YAML and reads them back.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lawnchairsociety/delve/internal/dungeon"
	"github.com/lawnchairsociety/delve/internal/monster"
	"github.com/lawnchairsociety/delve/internal/theme"
	"gopkg.in/yaml.v3"
)

// DungeonYAML represents an exported dungeon
type DungeonYAML struct {
	Seed      string     `yaml:"seed"`
	RoomCount int        `yaml:"room_count"`
	Rooms     []RoomYAML `yaml:"rooms"`
}

// RoomYAML represents a room in YAML format
type RoomYAML struct {
	Index      int            `yaml:"index"`
	Keyword    string         `yaml:"keyword"`
	Difficulty float32        `yaml:"difficulty"`
	Monster    string         `yaml:"monster,omitempty"`
	Exits      map[string]int `yaml:"exits,omitempty"`
}

// orderedDungeonYAML is used for writing so exits keep compass order
type orderedDungeonYAML struct {
	Seed      string    `yaml:"seed"`
	RoomCount int       `yaml:"room_count"`
	Rooms     yaml.Node `yaml:"rooms"`
}

// Write encodes d as YAML to w, headed by a comment naming the seed
func Write(w io.Writer, d *dungeon.Dungeon, seed string) error {
	fmt.Fprintf(w, "# Dungeon generated from seed: %q\n", seed)
	fmt.Fprintf(w, "# Room count: %d\n\n", d.RoomCount())

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	doc := &orderedDungeonYAML{
		Seed:      seed,
		RoomCount: d.RoomCount(),
		Rooms:     roomsNode(d),
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// Marshal returns the YAML export of d
func Marshal(d *dungeon.Dungeon, seed string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d, seed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDungeon writes d to a YAML file, creating parent directories
func WriteDungeon(path string, d *dungeon.Dungeon, seed string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := Write(f, d, seed); err != nil {
		return err
	}
	return f.Close()
}

func roomsNode(d *dungeon.Dungeon) yaml.Node {
	node := yaml.Node{Kind: yaml.SequenceNode}

	for i, room := range d.Rooms() {
		roomNode := &yaml.Node{Kind: yaml.MappingNode}
		addScalarField(roomNode, "index", strconv.Itoa(i), "")
		addScalarField(roomNode, "keyword", room.Keyword.String(), "!!str")
		addScalarField(roomNode, "difficulty", strconv.FormatFloat(float64(room.Difficulty), 'g', -1, 32), "")
		if room.Monster != nil {
			addScalarField(roomNode, "monster", room.Monster.Name(), "!!str")
		}
		if exits := d.Exits(i); len(exits) > 0 {
			addExitsField(roomNode, exits)
		}
		node.Content = append(node.Content, roomNode)
	}

	return node
}

func addScalarField(node *yaml.Node, key, value, tag string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
	)
}

// addExitsField writes exits in compass order: north, east, south, west
func addExitsField(node *yaml.Node, exits dungeon.Passages) {
	mapNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, dir := range dungeon.AllCompassPoints() {
		dest, ok := exits[dir]
		if !ok {
			continue
		}
		addScalarField(mapNode, dir.String(), strconv.Itoa(dest), "")
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "exits"},
		mapNode,
	)
}

// Read decodes an exported dungeon. Monsters are resolved by name against
// bestiary, which may be nil. The seed label is returned alongside.
func Read(r io.Reader, bestiary *monster.Bestiary) (*dungeon.Dungeon, string, error) {
	var doc DungeonYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("failed to parse dungeon YAML: %w", err)
	}
	d, err := doc.Dungeon(bestiary)
	if err != nil {
		return nil, "", err
	}
	return d, doc.Seed, nil
}

// LoadDungeon reads a dungeon written by WriteDungeon
func LoadDungeon(path string, bestiary *monster.Bestiary) (*dungeon.Dungeon, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open dungeon file: %w", err)
	}
	defer f.Close()

	return Read(f, bestiary)
}

// Dungeon rebuilds the dungeon graph from the decoded document
func (doc *DungeonYAML) Dungeon(bestiary *monster.Bestiary) (*dungeon.Dungeon, error) {
	if len(doc.Rooms) == 0 {
		return nil, fmt.Errorf("dungeon file has no rooms")
	}
	if doc.RoomCount != 0 && doc.RoomCount != len(doc.Rooms) {
		return nil, fmt.Errorf("room_count %d does not match %d rooms", doc.RoomCount, len(doc.Rooms))
	}

	rooms := make([]dungeon.Room, len(doc.Rooms))
	for i, r := range doc.Rooms {
		if r.Index != i {
			return nil, fmt.Errorf("room %d is listed at position %d", r.Index, i)
		}
		if r.Keyword == "" {
			return nil, fmt.Errorf("room %d has no keyword", i)
		}
		var m *monster.Monster
		if r.Monster != "" {
			resolved := bestiary.Resolve(r.Monster)
			m = &resolved
		}
		rooms[i] = dungeon.NewRoom(theme.New(r.Keyword), m)
		rooms[i].Difficulty = r.Difficulty
	}

	d := dungeon.New(rooms)
	for i, r := range doc.Rooms {
		for name, dest := range r.Exits {
			dir, ok := dungeon.ParseCompassPoint(name)
			if !ok {
				return nil, fmt.Errorf("room %d: unknown exit direction %q", i, name)
			}
			if dest < 0 || dest >= len(rooms) {
				return nil, fmt.Errorf("room %d: exit %s leads to missing room %d", i, name, dest)
			}
			d.CreatePassage(i, dir, dest)
		}
	}
	return d, nil
}

package dungeon

import "strings"

// CompassPoint is a direction a passage leaves a room in
type CompassPoint int

const (
	North CompassPoint = iota
	East
	South
	West
)

// String returns the lowercase direction name
func (c CompassPoint) String() string {
	switch c {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the direction a passage arrives from
func (c CompassPoint) Opposite() CompassPoint {
	switch c {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return c
	}
}

// Valid reports whether c is one of the four compass points
func (c CompassPoint) Valid() bool {
	return c >= North && c <= West
}

// AllCompassPoints returns the compass points clockwise from north
func AllCompassPoints() []CompassPoint {
	return []CompassPoint{North, East, South, West}
}

// ParseCompassPoint converts a direction name or its first letter
func ParseCompassPoint(s string) (CompassPoint, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, true
	case "east", "e":
		return East, true
	case "south", "s":
		return South, true
	case "west", "w":
		return West, true
	default:
		return North, false
	}
}

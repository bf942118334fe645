package model

import "fmt"

type Location struct {
	X, Y int
}

func MakeLocation(x, y int) Location {
	return Location{X: x, Y: y}
}

// Direction order follows the path index order: right, down, left, up.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

var Directions = []Direction{Right, Down, Left, Up}

func (d Direction) IsValid() bool {
	return d >= Right && d <= Up
}

// Offset is the unit step taken when moving in direction d.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) Name() string {
	switch d {
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Up:
		return "Up"
	default:
		return fmt.Sprintf("n/a:%d", d)
	}
}

func (d Direction) String() string {
	return d.Name()
}

type Piece int

const (
	OpenSpace Piece = iota
	Wall
	Food
	Player
	HiddenWall
)

func (p Piece) Name() string {
	switch p {
	case OpenSpace:
		return "OpenSpace"
	case Wall:
		return "Wall"
	case Food:
		return "Food"
	case Player:
		return "Player"
	case HiddenWall:
		return "HiddenWall"
	default:
		return fmt.Sprintf("n/a:%d", p)
	}
}

func (p Piece) String() string {
	return p.Name()
}

// Cell pairs a static piece with a transient occupant. A nil Occupant means nobody stands there.
type Cell struct {
	Piece    Piece
	Occupant *Piece
}

// Grid is addressed [x][y]. MovePiece never touches the receiver, it returns a changed copy.
type Grid interface {
	Width() int
	Height() int
	InBound(l Location) bool
	// PieceAt is Wall off the grid.
	PieceAt(l Location) Piece
	HasPlayer(l Location) bool
	MovePiece(source, destination Location) Grid
	Clone() Grid
}

// Model is the state threaded through successive moves.
type Model struct {
	PlayerLocation Location
	Grid           Grid
}

package model

import (
	"errors"
)

var (
	ErrNoPlayer    = errors.New("grid has no player")
	ErrManyPlayers = errors.New("grid has more than one player")
)

func MoveLocation(l Location, d Direction) Location {
	dx, dy := d.Offset()
	return Location{X: l.X + dx, Y: l.Y + dy}
}

func (l Location) Move(d Direction) Location {
	return MoveLocation(l, d)
}

func GetPiece(l Location, g Grid) Piece {
	return g.PieceAt(l)
}

// IsValidMove only refuses locations off the grid and Walls. A HiddenWall is passable.
func IsValidMove(destination Location, g Grid) bool {
	if !g.InBound(destination) {
		return false
	}
	return g.PieceAt(destination) != Wall
}

// MovePlayer returns m itself when the move is refused. Unknown directions and a
// player standing off the grid go nowhere.
func MovePlayer(m Model, d Direction) Model {
	if !d.IsValid() || m.Grid == nil || !m.Grid.InBound(m.PlayerLocation) {
		return m
	}
	destination := MoveLocation(m.PlayerLocation, d)
	if !IsValidMove(destination, m.Grid) {
		return m
	}
	return Model{
		PlayerLocation: destination,
		Grid:           m.Grid.MovePiece(m.PlayerLocation, destination),
	}
}

func MvPlayerLeft(m Model) Model {
	return MovePlayer(m, Left)
}

func MvPlayerRight(m Model) Model {
	return MovePlayer(m, Right)
}

func MvPlayerUp(m Model) Model {
	return MovePlayer(m, Up)
}

func MvPlayerDown(m Model) Model {
	return MovePlayer(m, Down)
}

type Action func(Model) Model

var Actions = map[Direction]Action{
	Right: MvPlayerRight,
	Down:  MvPlayerDown,
	Left:  MvPlayerLeft,
	Up:    MvPlayerUp,
}

// PlayerCells lists every location the grid reports a player on, column by column.
func PlayerCells(g Grid) []Location {
	found := make([]Location, 0, 1)
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			l := Location{X: x, Y: y}
			if g.HasPlayer(l) {
				found = append(found, l)
			}
		}
	}
	return found
}

// NewModel places the model on the grid's only player.
func NewModel(g Grid) (Model, error) {
	players := PlayerCells(g)
	switch len(players) {
	case 0:
		return Model{}, ErrNoPlayer
	case 1:
		return Model{PlayerLocation: players[0], Grid: g}, nil
	default:
		return Model{}, ErrManyPlayers
	}
}

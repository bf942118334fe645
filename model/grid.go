package model

import (
	"strings"
)

var (
	_ Grid = PieceGrid(nil)
	_ Grid = CellGrid(nil)
)

// PieceGrid is the bare grid: a cell is its piece and the player is stored as a Player piece.
type PieceGrid [][]Piece

func (g PieceGrid) Width() int {
	return len(g)
}

func (g PieceGrid) Height() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g PieceGrid) InBound(l Location) bool {
	return inBound(g, l)
}

// PieceAt reports Wall for locations off the grid.
func (g PieceGrid) PieceAt(l Location) Piece {
	if !g.InBound(l) {
		return Wall
	}
	return g[l.X][l.Y]
}

func (g PieceGrid) HasPlayer(l Location) bool {
	return g.InBound(l) && g[l.X][l.Y] == Player
}

func (g PieceGrid) Clone() Grid {
	return g.clone()
}

func (g PieceGrid) clone() PieceGrid {
	clone := make(PieceGrid, len(g))
	for x, column := range g {
		clone[x] = append([]Piece(nil), column...)
	}
	return clone
}

// MovePiece leaves OpenSpace behind and puts the Player on destination.
// It does not validate; callers check IsValidMove first.
func (g PieceGrid) MovePiece(source, destination Location) Grid {
	clone := g.clone()
	clone[source.X][source.Y] = OpenSpace
	clone[destination.X][destination.Y] = Player
	return clone
}

func (g PieceGrid) String() string {
	return render(g, func(l Location) Piece { return g[l.X][l.Y] })
}

// CellGrid tracks a static piece and an occupant per cell.
type CellGrid [][]Cell

func (g CellGrid) Width() int {
	return len(g)
}

func (g CellGrid) Height() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g CellGrid) InBound(l Location) bool {
	return inBound(g, l)
}

func (g CellGrid) PieceAt(l Location) Piece {
	if !g.InBound(l) {
		return Wall
	}
	return g[l.X][l.Y].Piece
}

func (g CellGrid) CellAt(l Location) Cell {
	return g[l.X][l.Y]
}

// HasPlayer also accepts a bare Player piece, which is how the start cell of a
// grid built by ToCells looks before the first move.
func (g CellGrid) HasPlayer(l Location) bool {
	if !g.InBound(l) {
		return false
	}
	cell := g[l.X][l.Y]
	if cell.Occupant != nil {
		return *cell.Occupant == Player
	}
	return cell.Piece == Player
}

func (g CellGrid) Clone() Grid {
	return g.clone()
}

func (g CellGrid) clone() CellGrid {
	clone := make(CellGrid, len(g))
	for x, column := range g {
		clone[x] = make([]Cell, len(column))
		for y, cell := range column {
			clone[x][y] = Cell{Piece: cell.Piece, Occupant: occupant(cell.Occupant)}
		}
	}
	return clone
}

// MovePiece clears the source and sets the Player as occupant of destination.
// Leaving a HiddenWall reveals it as a Wall; leaving anything else leaves open space,
// so Food under the source is gone.
func (g CellGrid) MovePiece(source, destination Location) Grid {
	clone := g.clone()
	src := &clone[source.X][source.Y]
	if src.Piece == HiddenWall {
		src.Piece = Wall
		src.Occupant = nil
	} else {
		*src = Cell{Piece: OpenSpace}
	}
	player := Player
	clone[destination.X][destination.Y].Occupant = &player
	return clone
}

func (g CellGrid) String() string {
	return render(g, func(l Location) Piece {
		if g.HasPlayer(l) {
			return Player
		}
		return g[l.X][l.Y].Piece
	})
}

// ToCells wraps every piece into a cell with no occupant.
func ToCells(grid PieceGrid) CellGrid {
	cells := make(CellGrid, len(grid))
	for x, column := range grid {
		cells[x] = make([]Cell, len(column))
		for y, piece := range column {
			cells[x][y] = Cell{Piece: piece}
		}
	}
	return cells
}

func occupant(p *Piece) *Piece {
	if p == nil {
		return nil
	}
	o := *p
	return &o
}

func inBound(g Grid, l Location) bool {
	return l.X >= 0 && l.X < g.Width() && l.Y >= 0 && l.Y < g.Height()
}

// render writes one text line per row, the inverse of the level reader.
func render(g Grid, at func(Location) Piece) string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			sb.WriteRune(PieceRune(at(Location{X: x, Y: y})))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

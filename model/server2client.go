package model

type ServerMessage struct {
	Setup      []Setup
	Directions []DirectionSuccess
	Visibles   []Visibilize
}

type Setup struct {
	Width, Height int
	SessionId     string
	Level         string
}

type DirectionSuccess struct {
	Direction Direction
	X, Y      int
	Success   bool
}

type Visibilize struct {
	X, Y      int
	Piece     Piece
	HasPlayer bool
}

type ClientMessage struct {
	Move Direction
}

// Visible describes a cell as a client may see it: a HiddenWall looks like open space
// until it is revealed.
func Visible(g Grid, l Location) Visibilize {
	piece := g.PieceAt(l)
	switch piece {
	case HiddenWall:
		piece = OpenSpace
	case Player:
		// bare start cell, the player is reported through HasPlayer
		piece = OpenSpace
	}
	return Visibilize{
		X:         l.X,
		Y:         l.Y,
		Piece:     piece,
		HasPlayer: g.HasPlayer(l),
	}
}

func VisibleAll(g Grid) []Visibilize {
	visibles := make([]Visibilize, 0, g.Width()*g.Height())
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			visibles = append(visibles, Visible(g, Location{X: x, Y: y}))
		}
	}
	return visibles
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, Location{X: 1, Y: 2}, MakeLocation(1, 2))

	origin := MakeLocation(0, 0)
	assert.Equal(t, Location{X: 0, Y: -1}, MoveLocation(origin, Up))
	assert.Equal(t, Location{X: 0, Y: 1}, MoveLocation(origin, Down))
	assert.Equal(t, Location{X: -1, Y: 0}, MoveLocation(origin, Left))
	assert.Equal(t, Location{X: 1, Y: 0}, origin.Move(Right))
}

func TestDirection(t *testing.T) {
	for _, d := range Directions {
		assert.True(t, d.IsValid())
		l := MakeLocation(3, 3)
		assert.Equal(t, l, l.Move(d).Move(d.Opposite()), d.Name())
	}
	assert.False(t, Direction(7).IsValid())
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, Up, Down.Opposite())

	d, err := ParseDirection(" LEFT ")
	require.NoError(t, err)
	assert.Equal(t, Left, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestGetPiece(t *testing.T) {
	grid := PieceGrid{{Wall, Food}, {Wall, Player}}
	assert.Equal(t, Wall, GetPiece(MakeLocation(0, 0), grid))
	assert.Equal(t, Food, GetPiece(MakeLocation(0, 1), grid))
	assert.Equal(t, 2, grid.Width())
	assert.Equal(t, 2, grid.Height())
}

func TestIsValidMove(t *testing.T) {
	grid := PieceGrid{{Wall, Food}, {Wall, Player}}

	t.Run("walls block", func(t *testing.T) {
		assert.False(t, IsValidMove(MakeLocation(1, 0), grid))
		assert.True(t, IsValidMove(MakeLocation(0, 1), grid))
	})

	t.Run("out of bounds blocks", func(t *testing.T) {
		for _, l := range []Location{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
			assert.False(t, IsValidMove(l, grid), "%v", l)
		}
	})

	t.Run("hidden wall is passable", func(t *testing.T) {
		cells := ToCells(PieceGrid{{HiddenWall}})
		assert.True(t, IsValidMove(MakeLocation(0, 0), cells))
	})
}

func TestMovePlayerOntoMoveableSpaces(t *testing.T) {
	init := Model{
		PlayerLocation: MakeLocation(1, 1),
		Grid:           PieceGrid{{Wall, Food}, {Wall, Player}},
	}

	model1 := MvPlayerLeft(init)
	model2 := MvPlayerRight(model1)

	assert.Equal(t, PieceGrid{{Wall, Player}, {Wall, OpenSpace}}, model1.Grid)
	assert.Equal(t, MakeLocation(0, 1), model1.PlayerLocation)

	assert.Equal(t, PieceGrid{{Wall, OpenSpace}, {Wall, Player}}, model2.Grid)
	assert.Equal(t, MakeLocation(1, 1), model2.PlayerLocation)

	// input untouched
	assert.Equal(t, PieceGrid{{Wall, Food}, {Wall, Player}}, init.Grid)
}

func TestMovePlayerOutOfBounds(t *testing.T) {
	t.Run("open 2x2", func(t *testing.T) {
		init := Model{
			PlayerLocation: MakeLocation(1, 1),
			Grid:           PieceGrid{{OpenSpace, OpenSpace}, {OpenSpace, Player}},
		}

		assert.Equal(t, init, MvPlayerRight(init))
		assert.Equal(t, init, MvPlayerDown(init))
		assert.Equal(t, Model{
			PlayerLocation: MakeLocation(0, 1),
			Grid:           PieceGrid{{OpenSpace, Player}, {OpenSpace, OpenSpace}},
		}, MvPlayerLeft(MvPlayerLeft(init)))
		assert.Equal(t, Model{
			PlayerLocation: MakeLocation(1, 0),
			Grid:           PieceGrid{{OpenSpace, OpenSpace}, {Player, OpenSpace}},
		}, MvPlayerUp(MvPlayerUp(init)))
	})

	t.Run("single cell", func(t *testing.T) {
		for _, start := range []Location{{0, 0}, {1, 1}} {
			init := Model{PlayerLocation: start, Grid: PieceGrid{{Player}}}
			for d, action := range Actions {
				assert.Equal(t, init, action(init), "%v from %v", d, start)
			}
		}
	})
}

func TestInvalidMoveReturnsSameGrid(t *testing.T) {
	grid := ToCells(PieceGrid{{Wall, Food}, {Wall, Player}})
	init := Model{PlayerLocation: MakeLocation(1, 1), Grid: grid}

	after := MvPlayerUp(init)
	assert.Equal(t, init, after)
	// same backing storage, nothing was cloned
	assert.True(t, &grid[0][0] == &after.Grid.(CellGrid)[0][0])
}

func TestMovePlayerDoesNotMutateInput(t *testing.T) {
	grids := map[string]Grid{
		"pieces": PieceGrid{{OpenSpace, Food}, {HiddenWall, Player}},
		"cells":  ToCells(PieceGrid{{OpenSpace, Food}, {HiddenWall, Player}}),
	}
	for name, grid := range grids {
		t.Run(name, func(t *testing.T) {
			snapshot := grid.Clone()
			m := Model{PlayerLocation: MakeLocation(1, 1), Grid: grid}
			for _, d := range []Direction{Up, Left, Down, Right, Up} {
				m = MovePlayer(m, d)
			}
			assert.Equal(t, snapshot, grid)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	init := Model{
		PlayerLocation: MakeLocation(1, 1),
		Grid: PieceGrid{
			{OpenSpace, Food, OpenSpace},
			{Food, Player, Food},
			{OpenSpace, Food, OpenSpace},
		},
	}
	for _, d := range Directions {
		there := MovePlayer(init, d)
		back := MovePlayer(there, d.Opposite())
		assert.Equal(t, init.PlayerLocation, back.PlayerLocation, d.Name())
		// the food that was stepped on is gone for good
		assert.Equal(t, OpenSpace, back.Grid.PieceAt(there.PlayerLocation), d.Name())
		assert.Equal(t, Player, back.Grid.PieceAt(init.PlayerLocation), d.Name())
	}
}

func TestExactlyOnePlayer(t *testing.T) {
	level := PieceGrid{
		{Wall, Wall, Wall, Wall},
		{Wall, Player, Food, Wall},
		{Wall, HiddenWall, Food, Wall},
		{Wall, Food, OpenSpace, Wall},
		{Wall, Wall, Wall, Wall},
	}
	moves := []Direction{Right, Right, Down, Left, Up, Up, Right, Down, Down, Left, Left, Up, Right}

	for name, grid := range map[string]Grid{"pieces": level, "cells": ToCells(level)} {
		t.Run(name, func(t *testing.T) {
			m, err := NewModel(grid)
			require.NoError(t, err)
			require.Equal(t, MakeLocation(1, 1), m.PlayerLocation)
			for i, d := range moves {
				m = MovePlayer(m, d)
				assert.Equal(t, []Location{m.PlayerLocation}, PlayerCells(m.Grid), "after move %d", i)
			}
		})
	}
}

func TestCellGridMove(t *testing.T) {
	init := Model{
		PlayerLocation: MakeLocation(1, 1),
		Grid:           ToCells(PieceGrid{{Wall, Food}, {Wall, Player}}),
	}

	model1 := MvPlayerLeft(init)
	cells := model1.Grid.(CellGrid)
	player := Player

	assert.Equal(t, MakeLocation(0, 1), model1.PlayerLocation)
	assert.Equal(t, Cell{Piece: Food, Occupant: &player}, cells.CellAt(MakeLocation(0, 1)))
	assert.Equal(t, Cell{Piece: OpenSpace}, cells.CellAt(MakeLocation(1, 1)))

	model2 := MvPlayerRight(model1)
	cells = model2.Grid.(CellGrid)

	assert.Equal(t, MakeLocation(1, 1), model2.PlayerLocation)
	// the food was not collected, it is simply gone
	assert.Equal(t, Cell{Piece: OpenSpace}, cells.CellAt(MakeLocation(0, 1)))
	assert.Equal(t, Cell{Piece: OpenSpace, Occupant: &player}, cells.CellAt(MakeLocation(1, 1)))
	assert.Equal(t, "##\n A\n", cells.String())
}

func TestHiddenWallReveal(t *testing.T) {
	m, err := NewModel(ToCells(PieceGrid{{Player}, {HiddenWall}, {OpenSpace}}))
	require.NoError(t, err)

	onHidden := MvPlayerRight(m)
	require.Equal(t, MakeLocation(1, 0), onHidden.PlayerLocation)
	assert.Equal(t, HiddenWall, onHidden.Grid.PieceAt(MakeLocation(1, 0)))
	assert.True(t, onHidden.Grid.HasPlayer(MakeLocation(1, 0)))

	past := MvPlayerRight(onHidden)
	require.Equal(t, MakeLocation(2, 0), past.PlayerLocation)
	assert.Equal(t, Cell{Piece: Wall}, past.Grid.(CellGrid).CellAt(MakeLocation(1, 0)))

	// the revealed wall blocks the way back
	assert.Equal(t, past, MvPlayerLeft(past))
}

func TestToCells(t *testing.T) {
	cells := ToCells(PieceGrid{{Wall, Food, OpenSpace}, {HiddenWall, Player, Wall}})
	require.Equal(t, 2, cells.Width())
	require.Equal(t, 3, cells.Height())
	assert.Equal(t, Cell{Piece: Food}, cells.CellAt(MakeLocation(0, 1)))
	assert.Equal(t, Cell{Piece: HiddenWall}, cells.CellAt(MakeLocation(1, 0)))
	assert.Equal(t, Cell{Piece: Player}, cells.CellAt(MakeLocation(1, 1)))
	assert.True(t, cells.HasPlayer(MakeLocation(1, 1)))
}

func TestNewModel(t *testing.T) {
	_, err := NewModel(PieceGrid{{OpenSpace}})
	assert.ErrorIs(t, err, ErrNoPlayer)
	_, err = NewModel(PieceGrid{{Player, Player}})
	assert.ErrorIs(t, err, ErrManyPlayers)
}

func TestVisible(t *testing.T) {
	grid := ToCells(PieceGrid{{Player, HiddenWall}, {Food, Wall}})

	assert.Equal(t, Visibilize{X: 0, Y: 0, Piece: OpenSpace, HasPlayer: true}, Visible(grid, MakeLocation(0, 0)))
	assert.Equal(t, Visibilize{X: 0, Y: 1, Piece: OpenSpace}, Visible(grid, MakeLocation(0, 1)))
	assert.Equal(t, Visibilize{X: 1, Y: 0, Piece: Food}, Visible(grid, MakeLocation(1, 0)))
	assert.Len(t, VisibleAll(grid), 4)
}

func TestUnknownDirectionGoesNowhere(t *testing.T) {
	m, err := NewModel(ToCells(PieceGrid{{Player}, {HiddenWall}, {Food}}))
	require.NoError(t, err)

	onHidden := MvPlayerRight(m)
	require.Equal(t, MakeLocation(1, 0), onHidden.PlayerLocation)
	after := MovePlayer(onHidden, Direction(9))
	assert.Equal(t, onHidden, after)
	assert.Equal(t, HiddenWall, after.Grid.PieceAt(MakeLocation(1, 0)))
	assert.True(t, &onHidden.Grid.(CellGrid)[0][0] == &after.Grid.(CellGrid)[0][0])

	onFood := MvPlayerRight(onHidden)
	require.Equal(t, MakeLocation(2, 0), onFood.PlayerLocation)
	after = MovePlayer(onFood, Direction(-1))
	assert.Equal(t, onFood, after)
	assert.Equal(t, Food, after.Grid.PieceAt(MakeLocation(2, 0)))

	bare := Model{PlayerLocation: MakeLocation(0, 0), Grid: PieceGrid{{Player, Food}}}
	assert.Equal(t, bare, MovePlayer(bare, Direction(4)))
}

func TestPlayerOffGridCannotEnter(t *testing.T) {
	grid := PieceGrid{{OpenSpace, OpenSpace}, {OpenSpace, OpenSpace}}
	init := Model{PlayerLocation: MakeLocation(2, 1), Grid: grid}

	assert.Equal(t, init, MvPlayerLeft(init))
	assert.Equal(t, init, MvPlayerUp(init))

	cells := Model{PlayerLocation: MakeLocation(-1, 0), Grid: ToCells(grid)}
	assert.Equal(t, cells, MvPlayerRight(cells))

	assert.Equal(t, Model{}, MovePlayer(Model{}, Right))
}

func TestPieceAtOffGridIsWall(t *testing.T) {
	pieces := PieceGrid{{Food, Player}}
	for name, grid := range map[string]Grid{"pieces": pieces, "cells": ToCells(pieces)} {
		t.Run(name, func(t *testing.T) {
			for _, l := range []Location{{-1, 0}, {0, -1}, {1, 0}, {0, 2}} {
				assert.Equal(t, Wall, GetPiece(l, grid), "%v", l)
				assert.False(t, grid.HasPlayer(l), "%v", l)
			}
			assert.Equal(t, Food, GetPiece(MakeLocation(0, 0), grid))
		})
	}
}

package model

import (
	"fmt"
	"strings"
)

var pieceRunes = map[Piece]rune{
	OpenSpace:  ' ',
	Wall:       '#',
	Food:       '*',
	Player:     'A',
	HiddenWall: '?',
}

func PieceRune(p Piece) rune {
	r, ok := pieceRunes[p]
	if !ok {
		return '!'
	}
	return r
}

// ParsePieceRune reads one level character. '.' is accepted as open space so that
// trailing blanks survive editors.
func ParsePieceRune(r rune) (Piece, bool) {
	if r == '.' {
		return OpenSpace, true
	}
	for p, pr := range pieceRunes {
		if pr == r {
			return p, true
		}
	}
	return OpenSpace, false
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r":
		return Right, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "up", "u":
		return Up, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

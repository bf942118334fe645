package server

import (
	"fmt"
	"net/http"

	"github.com/zucenko/muncher/model"
)

type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_NOT_FOUND
	GAME_INVALIDE
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case GAME_READY:
		return http.StatusOK
	case GAME_NOT_FOUND:
		return http.StatusNotFound
	case GAME_INVALIDE:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_ERR:
		return "GS_ERR"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

type GameContextAwaiting struct {
	ResponseCode ResponseCode
	GameSession  *GameSession
}

type GameRequest struct {
	Level               string
	GameContextAwaiting chan GameContextAwaiting
}

type GameEvent struct {
	Direction model.Direction
}

package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zucenko/muncher/model"
)

type GameServer struct {
	Levels       *Levels
	DefaultLevel string
	GameSessions map[uuid.UUID]*GameSession
	GameRequests chan GameRequest
	GameOvers    chan uuid.UUID
	Upgrader     *websocket.Upgrader
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession is one player walking one level. Model is only touched by Loop once the
// session runs.
type GameSession struct {
	Id             uuid.UUID
	Level          string
	State          GameSessionState
	Model          model.Model
	Conn           *websocket.Conn
	Events         chan GameEvent
	MessagesToSend chan model.ServerMessage
	done           chan struct{}

	DebugInMessages  int
	DebugOutMessages int
	DebugMoves       int
	DebugLastMessage time.Time
}

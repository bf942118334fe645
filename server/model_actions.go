package server

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/muncher/model"
)

const requestTimeout = 200 * time.Millisecond

func NewGameServer(levels *Levels, defaultLevel string) *GameServer {
	return &GameServer{
		Levels:       levels,
		DefaultLevel: defaultLevel,
		GameSessions: make(map[uuid.UUID]*GameSession),
		GameRequests: make(chan GameRequest),
		GameOvers:    make(chan uuid.UUID, 16),
		Upgrader:     &websocket.Upgrader{},
	}
}

// HandleHttpCall serves GET /play/:level. It asks Loop for a session on the level,
// upgrades to a websocket and plays until the connection ends.
func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level := way.Param(r.Context(), "level")
		if level == "" {
			level = s.DefaultLevel
		}
		logger := log.WithField("level", level)
		logger.Info("HandleHttpCall connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{Level: level, GameContextAwaiting: gcas}:
		case <-time.After(requestTimeout):
			logger.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
		case <-time.After(requestTimeout):
			logger.Warn("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}
		if gca.ResponseCode != GAME_READY {
			logger.Infof("HandleHttpCall refused, code:%d", gca.ResponseCode)
			w.WriteHeader(gca.ResponseCode.ToHttp())
			return
		}

		gs := gca.GameSession
		defer func() {
			select {
			case s.GameOvers <- gs.Id:
			case <-time.After(requestTimeout):
				logger.Warn("GameOvers TIMEOUTED")
			}
		}()

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gs.Conn = con
		gs.Run()
	}
}

// HandleLevels serves GET /levels.
func (s *GameServer) HandleLevels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(s.Levels.Names()); err != nil {
			log.Warnf("HandleLevels encode: %v", err)
		}
	}
}

// Loop owns GameSessions. It hands out sessions and forgets finished ones.
func (s *GameServer) Loop(ctx context.Context) {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Info("GameServer.Loop stopped")
			return
		case id := <-s.GameOvers:
			if gs, ok := s.GameSessions[id]; ok {
				log.WithField("session", id).Infof("session over after %d moves", gs.DebugMoves)
				delete(s.GameSessions, id)
			}
		case gameReq := <-s.GameRequests:
			gameReq.GameContextAwaiting <- s.newSession(gameReq.Level)
		}
	}
}

func (s *GameServer) newSession(level string) GameContextAwaiting {
	if level == "" {
		return GameContextAwaiting{ResponseCode: GAME_INVALIDE}
	}
	start, err := s.Levels.Get(level)
	if err != nil {
		log.Warn(err)
		return GameContextAwaiting{ResponseCode: GAME_NOT_FOUND}
	}
	gs := NewGameSession(level, start)
	s.GameSessions[gs.Id] = gs
	log.WithFields(log.Fields{"session": gs.Id, "level": level}).Info("create GameSession")
	return GameContextAwaiting{ResponseCode: GAME_READY, GameSession: gs}
}

func NewGameSession(level string, start model.Model) *GameSession {
	return &GameSession{
		Id:             uuid.New(),
		Level:          level,
		State:          GS_NEW,
		Model:          start,
		Events:         make(chan GameEvent, 10),
		MessagesToSend: make(chan model.ServerMessage, 10),
		done:           make(chan struct{}),
	}
}

// Run blocks until the connection stops delivering messages.
func (gs *GameSession) Run() {
	gs.State = GS_PLAY
	gs.MessagesToSend <- gs.MakeGameSetupMessage()
	go gs.LoopChannelWrite()
	loopDone := make(chan struct{})
	go func() {
		gs.Loop()
		close(loopDone)
	}()
	if err := gs.LoopChannelRead(); err != nil {
		gs.State = GS_ERR
	} else {
		gs.State = GS_OVER
	}
	close(gs.done)
	<-loopDone
}

func (gs *GameSession) Loop() {
	for {
		select {
		case <-gs.done:
			return
		case pe := <-gs.Events:
			message := gs.Turn(pe)
			select {
			case gs.MessagesToSend <- message:
			case <-gs.done:
				return
			}
		}
	}
}

// Turn applies one move to the session model and describes the outcome.
func (gs *GameSession) Turn(pe GameEvent) model.ServerMessage {
	before := gs.Model
	if pe.Direction.IsValid() {
		gs.Model = model.MovePlayer(gs.Model, pe.Direction)
	}
	at := gs.Model.PlayerLocation
	success := at != before.PlayerLocation

	message := model.ServerMessage{
		Directions: []model.DirectionSuccess{{
			Direction: pe.Direction,
			X:         at.X, Y: at.Y,
			Success: success,
		}},
	}
	if success {
		gs.DebugMoves++
		message.Visibles = []model.Visibilize{
			model.Visible(gs.Model.Grid, before.PlayerLocation),
			model.Visible(gs.Model.Grid, at),
		}
	}
	log.WithFields(log.Fields{
		"session":   gs.Id,
		"direction": pe.Direction.Name(),
		"success":   success,
	}).Debug("turn")
	return message
}

func (gs *GameSession) MakeGameSetupMessage() model.ServerMessage {
	grid := gs.Model.Grid
	return model.ServerMessage{
		Setup: []model.Setup{{
			Width:     grid.Width(),
			Height:    grid.Height(),
			SessionId: gs.Id.String(),
			Level:     gs.Level,
		}},
		Directions: []model.DirectionSuccess{},
		Visibles:   model.VisibleAll(grid),
	}
}

// LoopChannelRead returns nil when the client closed the connection normally.
func (gs *GameSession) LoopChannelRead() error {
	logger := log.WithField("session", gs.Id)
	logger.Debug("LoopChannelRead STARTED")
	for {
		_, r, err := gs.Conn.NextReader()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("LoopChannelRead connection closed")
				return nil
			}
			logger.Warnf("LoopChannelRead err reading message from Conn %v", err)
			return err
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(cm); err != nil {
			logger.Warnf("LoopChannelRead cant decode %v", err)
			return err
		}
		gs.DebugLastMessage = time.Now()
		gs.DebugInMessages++
		gs.Events <- GameEvent{Direction: cm.Move}
	}
}

// LoopChannelWrite keeps draining MessagesToSend after a failed write so Loop never blocks.
func (gs *GameSession) LoopChannelWrite() {
	logger := log.WithField("session", gs.Id)
	failed := false
	for {
		select {
		case <-gs.done:
			logger.Debug("LoopChannelWrite ENDED")
			return
		case mes := <-gs.MessagesToSend:
			if failed {
				continue
			}
			if err := gs.write(mes); err != nil {
				logger.Warnf("LoopChannelWrite cant write %v", err)
				failed = true
				gs.Conn.Close()
				continue
			}
			gs.DebugOutMessages++
		}
	}
}

func (gs *GameSession) write(mes model.ServerMessage) error {
	w, err := gs.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

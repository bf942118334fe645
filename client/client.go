// Package client talks to the game server over a websocket and keeps the
// last known state of every visible cell.
package client

import (
	"context"
	"encoding/gob"
	"errors"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/muncher/model"
)

var ErrNoSetup = errors.New("server did not send a setup message")

type Client struct {
	Conn   *websocket.Conn
	Setup  model.Setup
	Player model.Location
	Cells  map[model.Location]model.Visibilize
}

// Dial connects to url (ws://host/play/level) and waits for the setup message.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c := &Client{Conn: conn, Cells: make(map[model.Location]model.Visibilize)}
	mes, err := c.receive()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if len(mes.Setup) == 0 {
		conn.Close()
		return nil, ErrNoSetup
	}
	c.Setup = mes.Setup[0]
	log.WithField("session", c.Setup.SessionId).Infof("joined %s %dx%d", c.Setup.Level, c.Setup.Width, c.Setup.Height)
	return c, nil
}

// Move sends one direction and returns the server's answer to it.
func (c *Client) Move(d model.Direction) (model.DirectionSuccess, error) {
	w, err := c.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return model.DirectionSuccess{}, err
	}
	if err := gob.NewEncoder(w).Encode(model.ClientMessage{Move: d}); err != nil {
		w.Close()
		return model.DirectionSuccess{}, err
	}
	if err := w.Close(); err != nil {
		return model.DirectionSuccess{}, err
	}
	mes, err := c.receive()
	if err != nil {
		return model.DirectionSuccess{}, err
	}
	if len(mes.Directions) == 0 {
		return model.DirectionSuccess{}, errors.New("server answered without a direction result")
	}
	return mes.Directions[0], nil
}

func (c *Client) receive() (model.ServerMessage, error) {
	mes := model.ServerMessage{}
	_, r, err := c.Conn.NextReader()
	if err != nil {
		return mes, err
	}
	if err := gob.NewDecoder(r).Decode(&mes); err != nil {
		return mes, err
	}
	for _, v := range mes.Visibles {
		l := model.MakeLocation(v.X, v.Y)
		c.Cells[l] = v
		if v.HasPlayer {
			c.Player = l
		}
	}
	return mes, nil
}

// Close says goodbye properly so the server ends the session without an error.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.Conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		c.Conn.Close()
		return err
	}
	return c.Conn.Close()
}

// String draws the cells known so far in level text format.
func (c *Client) String() string {
	var sb strings.Builder
	for y := 0; y < c.Setup.Height; y++ {
		for x := 0; x < c.Setup.Width; x++ {
			v, ok := c.Cells[model.MakeLocation(x, y)]
			switch {
			case !ok:
				sb.WriteRune('~')
			case v.HasPlayer:
				sb.WriteRune(model.PieceRune(model.Player))
			default:
				sb.WriteRune(model.PieceRune(v.Piece))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

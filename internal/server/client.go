package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/internal/engine"
	"tactics-server/internal/network"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
	"tactics-server/pkg/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client connects one websocket session to the match.
type Client struct {
	Match   *engine.Match
	Hub     *network.Broadcaster
	Conn    *websocket.Conn
	Session string
	Send    chan api.Event
}

func NewClient(match *engine.Match, hub *network.Broadcaster, conn *websocket.Conn) *Client {
	return &Client{
		Match:   match,
		Hub:     hub,
		Conn:    conn,
		Session: utils.GenerateID(),
		Send:    make(chan api.Event, 256),
	}
}

func (c *Client) logger() *logrus.Entry {
	return logger.Component("client").WithField("session", c.Session)
}

// toInternal resolves the action name of a wire command.
func toInternal(session string, cmd api.ClientCommand) domain.InternalCommand {
	return domain.InternalCommand{
		Action:  domain.ParseAction(cmd.Action),
		Unit:    domain.UnitID(cmd.UnitID),
		Session: session,
		Payload: cmd.Payload,
	}
}

// readPump forwards client commands to the match loop.
func (c *Client) readPump() {
	updates := c.Hub.Register(c.Session)
	go func() {
		for ev := range updates {
			c.Send <- ev
		}
		close(c.Send)
	}()

	defer func() {
		c.Hub.Unregister(c.Session)
		if err := c.Conn.Close(); err != nil {
			c.logger().WithError(err).Debug("Failed to close websocket connection.")
		}
		c.logger().Info("Client disconnected.")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger().WithError(err).Warn("Failed to set read deadline.")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.logger().WithField("clients", c.Hub.SubscriberCount()).Info("Client connected.")

	// First frame: the whole board.
	c.Match.Submit(domain.InternalCommand{Action: domain.ActionInit, Session: c.Session})

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger().WithError(err).Error("Websocket read error.")
			}
			return
		}
		c.Match.Submit(toInternal(c.Session, cmd))
	}
}

// writePump sends events and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.logger().WithError(err).Debug("Failed to close websocket connection in writePump.")
		}
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger().WithError(err).Warn("Failed to set write deadline.")
			}
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(ev); err != nil {
				c.logger().WithError(err).Debug("Write failed.")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger().WithError(err).Warn("Failed to set ping write deadline.")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger().WithError(err).Debug("Ping failed.")
				return
			}
		}
	}
}

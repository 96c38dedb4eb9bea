// Package server exposes the game over WebSockets: a hub tracks connections
// and lobbies, a session drives one game, and net players mirror engine
// notifications to the remote side as protocol lines.
package server

import (
	"log"
	"strings"

	"sueca-game/internal/protocol"

	"github.com/gorilla/websocket"
)

// Client represents a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ID   string // assigned by the hub on registration
	Name string // chosen on create/join
}

// ReadPump reads protocol lines from the connection and hands them to the
// hub until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close from client %s (%s): %v", c.ID, c.conn.RemoteAddr(), err)
			}
			break
		}

		// A frame may carry several newline-separated lines.
		for _, line := range strings.Split(string(messageBytes), "\n") {
			cmd, ok := protocol.Parse(line)
			if !ok {
				continue
			}
			if cmd.Name != protocol.CmdPing {
				log.Printf("Received %q from client %s (%s)", cmd.Name, c.ID, c.Name)
			}
			c.hub.processMessage <- clientMessage{client: c, cmd: cmd}
		}
	}
}

// WritePump writes queued lines to the connection until the send channel is
// closed by the hub.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Write error to client %s (%s): %v", c.ID, c.Name, err)
			break
		}
	}
}

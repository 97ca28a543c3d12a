package websocket

import (
	"github.com/gorilla/websocket"

	"github.com/ShreyasChakki/Servon-sub001/pkg/logger"
)

// ReadPump consumes incoming frames and hands each to handle. It owns
// unregistration: when the read loop exits the session is gone.
func (c *Client) ReadPump(m *Manager, handle func(client *Client, message []byte)) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		handle(c, message)
	}
}

// WritePump drains the session's send channel onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}

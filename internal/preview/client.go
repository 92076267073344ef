package preview

import (
	"strings"

	"github.com/gorilla/websocket"
)

// client wraps a WebSocket connection as a line-oriented session. It is
// used by a single goroutine.
type client struct {
	conn    *websocket.Conn
	pending []string // Lines left over from a multi-line message
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

// readLine returns the next non-blank line, reading new messages as needed.
func (c *client) readLine() (string, error) {
	for len(c.pending) == 0 {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(string(message), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				c.pending = append(c.pending, trimmed)
			}
		}
	}

	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

func (c *client) write(data []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *client) remoteAddr() string {
	return c.conn.RemoteAddr().String()
}

package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 512
)

// Client is one websocket connection that has passed authentication and
// joined its user's room. All writes to the connection go through the send
// channel so a single goroutine owns the socket.
type Client struct {
	hub  *Hub
	uid  string
	conn *websocket.Conn
	send chan []byte
}

// clientMessage is the only inbound shape the server understands.
type clientMessage struct {
	Type string `json:"type"`
}

// Join registers an authenticated connection with the hub, announces it, and
// starts the read/write pumps. It returns immediately.
func Join(hub *Hub, conn *websocket.Conn, uid string) *Client {
	c := &Client{
		hub:  hub,
		uid:  uid,
		conn: conn,
		send: make(chan []byte, 16),
	}
	hub.register(c)

	go c.writePump()
	go c.readPump()

	c.enqueue(NewEvent(EventConnected, nil))
	return c
}

func (c *Client) enqueue(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		// ping/pong at the application level is pure liveness, no payload
		if msg.Type == "ping" {
			c.enqueue(NewEvent(EventPong, nil))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be < pongWait
	maxMessageSize = 4096
	sendBufferSize = 64
)

var (
	errConnClosed     = errors.New("connection closed")
	errSendBufferFull = errors.New("send buffer full")
)

// clientConn is one websocket client. All writes go through the send
// channel and a single writer goroutine, so no write mutex is needed.
type clientConn struct {
	id   string
	sock *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClientConn(id string, sock *websocket.Conn) *clientConn {
	return &clientConn{
		id:   id,
		sock: sock,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (c *clientConn) ID() string { return c.id }

// Send enqueues without blocking. A full buffer means the client cannot
// keep up; the hub evicts it rather than stall the rest of the room.
func (c *clientConn) Send(data []byte) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (c *clientConn) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *clientConn) write(mt int, data []byte) error {
	_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
	return c.sock.WriteMessage(mt, data)
}

// writePump drains the send channel and keeps the connection alive with
// pings. It owns the socket's write side and closes the socket on exit,
// which unblocks the reader.
func (c *clientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.write(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

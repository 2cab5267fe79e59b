package tcp

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
)

// a peer gets one read of at most MaxMessageSize bytes, longer messages are cut
const MaxMessageSize = 1024
const MaxDeadlineDuration = 5 * time.Minute // 5min max read timeout duration

type ClientConnection struct {
	ID        string // unique identifier = key in map
	conn      net.Conn
	Manager   *ConnectionManager // counters and logger
	Responder Responder          // turns the received bytes into the reply
}

// constructor for Connection
func NewClientConnection(conn net.Conn, manager *ConnectionManager, responder Responder) *ClientConnection {
	if responder == nil {
		responder = EchoResponder
	}
	return &ClientConnection{
		ID:        uuid.NewString(),
		conn:      conn,
		Manager:   manager,
		Responder: responder,
	}
}

// Handle performs the whole exchange for this connection: one read, one reply,
// then close. Zero bytes from the peer means it disconnected; nothing is written.
func (c *ClientConnection) Handle() {
	defer c.conn.Close()

	c.conn.SetReadDeadline(time.Now().Add(MaxDeadlineDuration))

	buf := make([]byte, MaxMessageSize)
	n, err := c.conn.Read(buf)
	if n == 0 {
		c.handleReadError(err)
		return
	}

	c.Manager.bytesReceived.Add(int64(n))
	c.Manager.logger.Info("message_received",
		"client_id", c.ID,
		"bytes", n,
		"message", string(buf[:n]),
	)

	reply := c.Responder(buf[:n])
	written, err := c.conn.Write(reply)
	c.Manager.bytesSent.Add(int64(written))
	if err != nil {
		c.Manager.logger.Warn("client_write_error",
			"client_id", c.ID,
			"error", err.Error(),
		)
		return
	}
	c.Manager.echoed.Add(1)
}

func (c *ClientConnection) handleReadError(err error) {
	if err == nil || errors.Is(err, io.EOF) { // peer closed without sending
		c.Manager.disconnected.Add(1)
		c.Manager.logger.Info("client_disconnected",
			"client_id", c.ID,
		)
		return
	}

	c.Manager.readErrors.Add(1)
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		c.Manager.logger.Warn("client_read_timeout",
			"client_id", c.ID,
		)
		return
	}
	// On Linux: "use of closed network connection", expected during shutdown
	if errors.Is(err, net.ErrClosed) || strings.Contains(err.Error(), "closed network connection") {
		return
	}
	c.Manager.logger.Error("client_read_error",
		"client_id", c.ID,
		"error", err.Error(),
	)
}

func (c *ClientConnection) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// method to close the connection
func (c *ClientConnection) Close() {
	c.conn.Close()
}

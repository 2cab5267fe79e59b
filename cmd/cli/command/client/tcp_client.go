package client

// tcp_client.go = one-shot request/response exchange with the echo server.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"unicode/utf8"
)

// DefaultBufferSize is the most the client reads back per exchange
const DefaultBufferSize = 1024

var (
	// ErrConnectionRefused is returned when nothing is listening on the target address
	ErrConnectionRefused = errors.New("connection refused")
	// ErrInvalidPayload is returned when the response bytes are not valid UTF-8
	ErrInvalidPayload = errors.New("response is not valid UTF-8")
)

// Dialer opens the stream connection for an exchange. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// TCPClient sends a message over a fresh connection and reads a single reply chunk
type TCPClient struct {
	serverAddr string
	bufferSize int
	Dialer     Dialer       // replaced in tests
	logger     *slog.Logger // exchange diagnostics, never the console output
}

// NewTCPClient creates a new TCP client; a non-positive bufferSize means DefaultBufferSize
func NewTCPClient(serverAddr string, bufferSize int, logger *slog.Logger) *TCPClient {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TCPClient{
		serverAddr: serverAddr,
		bufferSize: bufferSize,
		Dialer:     &net.Dialer{},
		logger:     logger,
	}
}

// ServerAddr returns the host:port this client dials
func (c *TCPClient) ServerAddr() string {
	return c.serverAddr
}

// Exchange opens one connection, writes the whole message, performs exactly one
// read of at most bufferSize bytes and closes the connection on every path.
// A peer that closes without writing yields an empty payload and no error.
func (c *TCPClient) Exchange(ctx context.Context, message string) ([]byte, error) {
	conn, err := c.Dialer.DialContext(ctx, "tcp", c.serverAddr)
	if err != nil {
		if isConnRefused(err) {
			c.logger.Debug("connection_refused", "server_addr", c.serverAddr)
			return nil, fmt.Errorf("%w to %s: %w", ErrConnectionRefused, c.serverAddr, err)
		}
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	// Write on a net.Conn returns only once the full payload is written or it fails
	if _, err := conn.Write([]byte(message)); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	buf := make([]byte, c.bufferSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	payload := buf[:n]
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w (%d bytes)", ErrInvalidPayload, n)
	}

	c.logger.Debug("exchange_completed",
		"server_addr", c.serverAddr,
		"sent_bytes", len(message),
		"received_bytes", n,
	)
	return payload, nil
}

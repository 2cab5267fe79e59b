package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ServerConfig holds the tunables of the echo server
type ServerConfig struct {
	MaxClients  int     // handlers allowed in flight at once
	AcceptRate  float64 // accepted connections per second
	AcceptBurst int
	Responder   Responder
}

// DefaultServerConfig mirrors the defaults in internal/config
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		MaxClients:  10,
		AcceptRate:  100,
		AcceptBurst: 20,
		Responder:   EchoResponder,
	}
}

// ErrServerStopped is returned by Listen once Stop has been called
var ErrServerStopped = errors.New("tcp server stopped")

type TCPServer struct {
	Addr    string             // configured listen address
	Manager *ConnectionManager // tracks live connections and counters

	responder Responder
	limiter   *rate.Limiter       // paces accepts, never rejects
	slots     *semaphore.Weighted // caps concurrent handlers

	mu       sync.Mutex // guards listener, stopped and wg.Add against Stop
	listener net.Listener
	stopped  bool

	ctx    context.Context // cancelled by Stop
	cancel context.CancelFunc
	wg     sync.WaitGroup // one per handler goroutine
	logger *slog.Logger
}

// constructor for Server
func NewServer(addr string, cfg ServerConfig, logger *slog.Logger) *TCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultServerConfig()
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = def.MaxClients
	}
	if cfg.AcceptRate <= 0 {
		cfg.AcceptRate = def.AcceptRate
	}
	if cfg.AcceptBurst <= 0 {
		cfg.AcceptBurst = def.AcceptBurst
	}
	if cfg.Responder == nil {
		cfg.Responder = def.Responder
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &TCPServer{
		Addr:      addr,
		Manager:   NewConnectionManager(logger),
		responder: cfg.Responder,
		limiter:   rate.NewLimiter(rate.Limit(cfg.AcceptRate), cfg.AcceptBurst),
		slots:     semaphore.NewWeighted(int64(cfg.MaxClients)),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
	}
}

// Listen binds the listen address. Start calls it when it has not been called yet.
func (s *TCPServer) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrServerStopped
	}
	if s.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to start TCP server, error: %w", err)
	}
	s.listener = listener
	s.logger.Info("tcp_server_listening", "addr", listener.Addr().String())
	return nil
}

// ListenAddr returns the bound address, or "" before Listen
func (s *TCPServer) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start accepts connections until Stop is called. Each connection is served in
// its own goroutine.
func (s *TCPServer) Start() error {
	if err := s.Listen(); err != nil {
		if errors.Is(err, ErrServerStopped) {
			return nil
		}
		return err
	}
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	for {
		if err := s.limiter.Wait(s.ctx); err != nil {
			return nil // stopped
		}
		if err := s.slots.Acquire(s.ctx, 1); err != nil {
			return nil // stopped
		}

		conn, err := listener.Accept()
		if err != nil {
			s.slots.Release(1)
			if s.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("failed_to_accept_connection", "error", err.Error())
			continue
		}

		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			conn.Close()
			s.slots.Release(1)
			return nil
		}
		s.wg.Add(1)
		s.mu.Unlock()

		go func(conn net.Conn) {
			defer s.wg.Done()
			defer s.slots.Release(1)
			s.handleConnection(conn)
		}(conn)
	}
}

// handle connections/lifecycle of single client connection
func (s *TCPServer) handleConnection(conn net.Conn) {
	client := NewClientConnection(conn, s.Manager, s.responder)
	s.Manager.AddConnection(client)
	// registered after Stop swept the manager
	if s.ctx.Err() != nil {
		client.Close()
	}
	client.Handle()
	s.Manager.RemoveConnection(client)
}

// Stats returns the current server counters
func (s *TCPServer) Stats() Stats {
	return s.Manager.Stats()
}

// Stop closes the listener and every open connection, then waits for handlers.
func (s *TCPServer) Stop() {
	s.cancel()

	s.mu.Lock()
	s.stopped = true
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Unlock()

	s.Manager.CloseAllConnections()
	s.wg.Wait()
	s.logger.Info("tcp_server_stopped")
}

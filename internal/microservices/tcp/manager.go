package tcp

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Stats is a point-in-time snapshot of server counters
type Stats struct {
	Accepted      int64 `json:"accepted"`
	Active        int   `json:"active"`
	Echoed        int64 `json:"echoed"`
	Disconnected  int64 `json:"disconnected"` // peers that closed before sending anything
	ReadErrors    int64 `json:"read_errors"`
	BytesReceived int64 `json:"bytes_received"`
	BytesSent     int64 `json:"bytes_sent"`
}

type ConnectionManager struct {
	clients map[string]*ClientConnection
	// key: client ID, value: ClientConnection pointer
	mu     sync.RWMutex // guards clients
	logger *slog.Logger

	accepted      atomic.Int64
	echoed        atomic.Int64
	disconnected  atomic.Int64
	readErrors    atomic.Int64
	bytesReceived atomic.Int64
	bytesSent     atomic.Int64
}

// constructor for ConnectionManager
func NewConnectionManager(logger *slog.Logger) *ConnectionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConnectionManager{
		clients: make(map[string]*ClientConnection),
		logger:  logger,
	}
}

// method to add a new connection
func (m *ConnectionManager) AddConnection(client *ClientConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
	m.accepted.Add(1)
	m.logger.Info("client_added",
		"client_id", client.ID,
		"remote_addr", client.RemoteAddr(),
	)
}

// method to remove a connection
func (m *ConnectionManager) RemoveConnection(client *ClientConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, client.ID)
	m.logger.Debug("client_removed",
		"client_id", client.ID,
	)
}

// method to close all connections
func (m *ConnectionManager) CloseAllConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, client := range m.clients {
		client.Close()
		m.logger.Info("client_connection_closed",
			"client_id", id,
		)
	}
	m.clients = make(map[string]*ClientConnection)
}

// ActiveCount returns the number of connections currently being handled
func (m *ConnectionManager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *ConnectionManager) Stats() Stats {
	return Stats{
		Accepted:      m.accepted.Load(),
		Active:        m.ActiveCount(),
		Echoed:        m.echoed.Load(),
		Disconnected:  m.disconnected.Load(),
		ReadErrors:    m.readErrors.Load(),
		BytesReceived: m.bytesReceived.Load(),
		BytesSent:     m.bytesSent.Load(),
	}
}

package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tcpecho/internal/microservices/http-api/handler"
	"tcpecho/internal/microservices/tcp"
)

type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) Stats() tcp.Stats {
	args := m.Called()
	return args.Get(0).(tcp.Stats)
}

func setupRouter(provider handler.StatsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return handler.NewRouter(provider)
}

func TestCheckConn(t *testing.T) {
	provider := new(MockStatsProvider)
	r := setupRouter(provider)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/check-conn", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"echo server is alive"}`, w.Body.String())
	provider.AssertNotCalled(t, "Stats")
}

func TestGetStats(t *testing.T) {
	provider := new(MockStatsProvider)
	provider.On("Stats").Return(tcp.Stats{
		Accepted:      3,
		Active:        1,
		Echoed:        2,
		BytesReceived: 10,
		BytesSent:     10,
	})
	r := setupRouter(provider)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got tcp.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.EqualValues(t, 3, got.Accepted)
	assert.Equal(t, 1, got.Active)
	assert.EqualValues(t, 10, got.BytesSent)
	provider.AssertExpectations(t)
}

func TestUnknownRoute(t *testing.T) {
	r := setupRouter(new(MockStatsProvider))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/manga", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

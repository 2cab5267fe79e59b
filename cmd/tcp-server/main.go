package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tcpecho/internal/config"
	"tcpecho/internal/microservices/http-api/handler"
	"tcpecho/internal/microservices/tcp"
	"tcpecho/internal/shared"
)

func main() {
	// Load config (fallback to env/default)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// Setup structured logging
	logger := shared.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	responder, err := tcp.ResponderFor(cfg.Transform)
	if err != nil {
		log.Fatalf("Failed to select responder: %v", err)
	}

	logger.Info("starting_tcp_server",
		"tcp_addr", cfg.ListenAddr,
		"transform", cfg.Transform,
		"max_clients", cfg.MaxClients,
	)

	server := tcp.NewServer(cfg.ListenAddr, tcp.ServerConfig{
		MaxClients:  cfg.MaxClients,
		AcceptRate:  cfg.AcceptRate,
		AcceptBurst: cfg.AcceptBurst,
		Responder:   responder,
	}, logger)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 2)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	// Optional status endpoint
	var statusServer *http.Server
	if cfg.StatusPort > 0 {
		if !cfg.IsDevelopment() {
			gin.SetMode(gin.ReleaseMode)
		}
		statusServer = &http.Server{
			Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.StatusPort),
			Handler: handler.NewRouter(server),
		}
		logger.Info("starting_status_server", "addr", statusServer.Addr)
		go func() {
			if err := statusServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		server.Stop()
		os.Exit(1)
	}

	if statusServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := statusServer.Shutdown(ctx); err != nil {
			logger.Warn("status_server_shutdown_failed", "error", err.Error())
		}
	}
	server.Stop()
	logger.Info("server_stopped_gracefully", "stats", server.Stats())
}

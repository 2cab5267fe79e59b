package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Client target
	Host       string `env:"ECHO_HOST" default:"localhost"`
	Port       int    `env:"ECHO_PORT" default:"8080"`
	BufferSize int    `env:"ECHO_BUFFER_SIZE" default:"1024"`

	// Echo server
	ListenAddr  string  `env:"ECHO_LISTEN_ADDR" default:":8080"`
	MaxClients  int     `env:"ECHO_MAX_CLIENTS" default:"10"`
	Transform   string  `env:"ECHO_TRANSFORM" default:"echo"`
	AcceptRate  float64 `env:"ECHO_ACCEPT_RATE" default:"100"`
	AcceptBurst int     `env:"ECHO_ACCEPT_BURST" default:"20"`
	StatusPort  int     `env:"ECHO_STATUS_PORT" default:"0"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	serverLoadProblems []string
}

// LoadConfig loads configuration from an optional .env file and the environment.
func LoadConfig() (*Config, error) {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load(".env")

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// Client target
	if err := loadEnvString(&config.Host, "ECHO_HOST", "localhost"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.Port, "ECHO_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.BufferSize, "ECHO_BUFFER_SIZE", 1024); err != nil {
		return nil, err
	}

	// Echo server; a bad value here is reported by ValidateServer so the client still runs
	config.serverLoadProblems = collect(
		loadEnvString(&config.ListenAddr, "ECHO_LISTEN_ADDR", ":8080"),
		loadEnvInt(&config.MaxClients, "ECHO_MAX_CLIENTS", 10),
		loadEnvString(&config.Transform, "ECHO_TRANSFORM", "echo"),
		loadEnvFloat(&config.AcceptRate, "ECHO_ACCEPT_RATE", 100),
		loadEnvInt(&config.AcceptBurst, "ECHO_ACCEPT_BURST", 20),
		loadEnvInt(&config.StatusPort, "ECHO_STATUS_PORT", 0),
	)

	// Logging
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	config.LogLevel = strings.ToLower(config.LogLevel)
	config.LogFormat = strings.ToLower(config.LogFormat)
	config.Transform = strings.ToLower(config.Transform)
	return config, nil
}

// Helper functions for type conversion
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the whole configuration
func (c *Config) Validate() error {
	problems := append(c.clientProblems(), c.serverProblems()...)
	return joinProblems(append(problems, c.logProblems()...))
}

// ValidateClient checks only the keys the client reads
func (c *Config) ValidateClient() error {
	return joinProblems(append(c.clientProblems(), c.logProblems()...))
}

// ValidateServer checks the keys the echo server reads
func (c *Config) ValidateServer() error {
	return joinProblems(append(c.serverProblems(), c.logProblems()...))
}

func (c *Config) clientProblems() []string {
	var errors []string

	if c.Host == "" {
		errors = append(errors, "ECHO_HOST must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, "ECHO_PORT must be between 1 and 65535")
	}
	if c.BufferSize < 1 {
		errors = append(errors, "ECHO_BUFFER_SIZE must be positive")
	}
	return errors
}

func (c *Config) serverProblems() []string {
	errors := append([]string(nil), c.serverLoadProblems...)

	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		errors = append(errors, fmt.Sprintf("ECHO_LISTEN_ADDR is not a host:port pair: %v", err))
	}
	if c.MaxClients < 1 {
		errors = append(errors, "ECHO_MAX_CLIENTS must be positive")
	}
	if c.AcceptRate <= 0 {
		errors = append(errors, "ECHO_ACCEPT_RATE must be positive")
	}
	if c.AcceptBurst < 1 {
		errors = append(errors, "ECHO_ACCEPT_BURST must be positive")
	}
	if c.StatusPort < 0 || c.StatusPort > 65535 {
		errors = append(errors, "ECHO_STATUS_PORT must be between 0 and 65535")
	}

	validTransforms := []string{"echo", "upper"}
	if !contains(validTransforms, c.Transform) {
		errors = append(errors, fmt.Sprintf("ECHO_TRANSFORM must be one of: %s", strings.Join(validTransforms, ", ")))
	}
	return errors
}

func (c *Config) logProblems() []string {
	var errors []string

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}
	return errors
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
}

// ServerAddr returns the host:port the client dials.
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

func collect(errs ...error) []string {
	var problems []string
	for _, err := range errs {
		if err != nil {
			problems = append(problems, err.Error())
		}
	}
	return problems
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

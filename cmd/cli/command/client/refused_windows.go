//go:build windows

package client

import (
	"errors"
	"syscall"
)

// WSAECONNREFUSED, what a refused dial carries on Windows
const wsaeConnRefused syscall.Errno = 10061

func isConnRefused(err error) bool {
	return errors.Is(err, wsaeConnRefused) || errors.Is(err, syscall.ECONNREFUSED)
}

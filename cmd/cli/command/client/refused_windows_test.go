//go:build windows

package client

var refusedErrno = wsaeConnRefused

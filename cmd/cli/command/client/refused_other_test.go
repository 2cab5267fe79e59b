//go:build !windows

package client

import "syscall"

var refusedErrno = syscall.ECONNREFUSED

package command

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startUpperServer(t *testing.T) (string, int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			buf := make([]byte, 1024)
			n, _ := conn.Read(buf)
			conn.Write([]byte(strings.ToUpper(string(buf[:n]))))
			conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRootCommand_InteractiveSession(t *testing.T) {
	host, port := startUpperServer(t)

	out := execute(t, "hello\nexit\n", "--host", host, "--port", strconv.Itoa(port))

	assert.Contains(t, out, "Enter message to send (or 'exit' to quit): ")
	assert.Contains(t, out, "Received from server: HELLO\n")
}

func TestSendCommand(t *testing.T) {
	host, port := startUpperServer(t)

	out := execute(t, "", "send", "--host", host, "--port", strconv.Itoa(port), "hello", "there")

	assert.Equal(t, "Received from server: HELLO THERE\n", out)
}

func TestSendCommand_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	out := execute(t, "", "send", "--host", "127.0.0.1", "--port", strconv.Itoa(port), "hello")

	assert.Equal(t, "Connection refused to 127.0.0.1:"+strconv.Itoa(port)+"\n", out)
}

func TestRootCommand_InvalidPort(t *testing.T) {
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"send", "--host", "localhost", "--port", "70000", "hello"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ECHO_PORT")
}

func TestSendCommand_IgnoresServerOnlyEnv(t *testing.T) {
	host, port := startUpperServer(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ECHO_LISTEN_ADDR", "9000")
	t.Setenv("ECHO_MAX_CLIENTS", "many")

	out := execute(t, "", "send", "--host", host, "--port", strconv.Itoa(port), "hello")

	assert.Equal(t, "Received from server: HELLO\n", out)
}

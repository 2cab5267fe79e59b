package client

// session.go = the prompt/exchange/print loop behind the root command.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const Prompt = "Enter message to send (or 'exit' to quit): "

// Exchanger is the part of TCPClient the session depends on
type Exchanger interface {
	Exchange(ctx context.Context, message string) ([]byte, error)
	ServerAddr() string
}

// Session reads lines from in and reports every exchange result to out
type Session struct {
	client Exchanger
	in     *bufio.Reader
	out    io.Writer
}

func NewSession(client Exchanger, in io.Reader, out io.Writer) *Session {
	return &Session{
		client: client,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// IsExit reports whether the line asks to quit. Only line terminators are trimmed.
func IsExit(line string) bool {
	return strings.EqualFold(strings.TrimRight(line, "\r\n"), "exit")
}

// Run loops until the user types exit or input ends. Exchange failures are
// printed and never stop the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, Prompt)
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		atEOF := err != nil

		message := strings.TrimRight(line, "\r\n")
		switch {
		case IsExit(message):
			return nil
		case message == "":
			// nothing to send
		default:
			payload, exErr := s.client.Exchange(ctx, message)
			Report(s.out, s.client.ServerAddr(), payload, exErr)
		}

		if atEOF {
			fmt.Fprintln(s.out)
			return nil
		}
	}
}

// Report prints the outcome of one exchange as a single console line
func Report(w io.Writer, serverAddr string, payload []byte, err error) {
	switch {
	case err == nil:
		fmt.Fprintf(w, "Received from server: %s\n", payload)
	case errors.Is(err, ErrConnectionRefused):
		fmt.Fprintf(w, "Connection refused to %s\n", serverAddr)
	default:
		fmt.Fprintf(w, "An error occurred: %v\n", err)
	}
}

package tcp

import (
	"bytes"
	"fmt"
)

// Responder builds the reply for the bytes a client sent
type Responder func(received []byte) []byte

// EchoResponder sends the bytes back unchanged
func EchoResponder(received []byte) []byte {
	return received
}

// UpperResponder sends the bytes back upper-cased
func UpperResponder(received []byte) []byte {
	return bytes.ToUpper(received)
}

// ResponderFor maps an ECHO_TRANSFORM value to its responder
func ResponderFor(name string) (Responder, error) {
	switch name {
	case "", "echo":
		return EchoResponder, nil
	case "upper":
		return UpperResponder, nil
	default:
		return nil, fmt.Errorf("unknown transform %q", name)
	}
}

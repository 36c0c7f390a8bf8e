package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete marks decode failures caused by the buffer ending
	// before the frame does. Callers that stream bytes should read more
	// and retry from the same offset when errors.Is reports it.
	ErrIncomplete = errors.New("incomplete frame")

	// ErrEmptyCommand is returned when encoding a command with no arguments.
	ErrEmptyCommand = errors.New("empty command")
)

// ErrorKind classifies how input bytes violated the wire grammar.
type ErrorKind int

const (
	KindUnknownTypeTag ErrorKind = iota
	KindMalformedInteger
	KindMalformedLength
	KindUnexpectedEndOfBuffer
	KindIncompleteFrame
	KindNestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnknownTypeTag:
		return "unknown type tag"
	case KindMalformedInteger:
		return "malformed integer"
	case KindMalformedLength:
		return "malformed length"
	case KindUnexpectedEndOfBuffer:
		return "unexpected end of buffer"
	case KindIncompleteFrame:
		return "incomplete frame"
	case KindNestingTooDeep:
		return "nesting too deep"
	}
	return "unknown error"
}

// ProtocolError reports a decode failure and the byte offset it occurred at.
type ProtocolError struct {
	Kind   ErrorKind
	Offset int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("resp: %s at offset %d", e.Kind, e.Offset)
}

// Unwrap exposes ErrIncomplete for the recoverable kinds, so
// errors.Is(err, ErrIncomplete) distinguishes "need more bytes"
// from true grammar violations.
func (e *ProtocolError) Unwrap() error {
	switch e.Kind {
	case KindUnexpectedEndOfBuffer, KindIncompleteFrame:
		return ErrIncomplete
	}
	return nil
}

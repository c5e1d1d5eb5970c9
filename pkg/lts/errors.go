package lts

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyConnected      = errors.New("stage already connected")
	ErrNotConnected          = errors.New("stage not connected")
	ErrUnsupportedDevice     = errors.New("not an LTS-family serial number")
	ErrInvalidSequence       = errors.New("invalid move sequence")
	ErrInvalidVelocityParams = errors.New("invalid velocity parameters")
)

// ConnectError reports a failure while connecting to or initializing a
// device. It wraps the underlying backend error.
type ConnectError struct {
	Serial string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect stage %s: %v", e.Serial, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// MoveError reports a failed move, carrying the serial number and the
// requested target position.
type MoveError struct {
	Serial string
	Target float64
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move stage %s to %.3f mm: %v", e.Serial, e.Target, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

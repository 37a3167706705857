// errstack.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the error taxonomy used throughout the kernel.
// Every public entry point returns an ErrorStack instead of a bare error,
// so that callers can see every recoverable problem found while parsing
// or validating a move, not just the first one.

package skrafl

import (
	"fmt"
	"strings"
)

// ErrorCode identifies a class of recoverable error raised by the kernel.
type ErrorCode int

const (
	// Input parsing
	ErrEmptyMove ErrorCode = iota
	ErrMalformedInteger
	ErrInvalidLetter
	ErrMissingField
	ErrExcessField
	ErrUnknownExchangeDisallowed

	// Semantic validation
	ErrRackMismatch
	ErrTileNotInRack
	ErrOutOfBounds
	ErrDisconnectedPlacement
	ErrPlacementOverBrick
	ErrPhonyWordFormed
	ErrExchangeInsufficientTiles
	ErrBoardPositionMismatch

	// Configuration
	ErrInvalidPlayerIndex
	ErrInvalidParameter

	// State
	ErrWrongBagState
)

// String renders a human-readable name for the error code, used as the
// default context when none is supplied.
func (c ErrorCode) String() string {
	switch c {
	case ErrEmptyMove:
		return "empty move"
	case ErrMalformedInteger:
		return "malformed integer"
	case ErrInvalidLetter:
		return "invalid letter"
	case ErrMissingField:
		return "missing field"
	case ErrExcessField:
		return "excess field"
	case ErrUnknownExchangeDisallowed:
		return "unknown exchange not allowed"
	case ErrRackMismatch:
		return "rack not in bag"
	case ErrTileNotInRack:
		return "tile not in rack"
	case ErrOutOfBounds:
		return "tile played out of bounds"
	case ErrDisconnectedPlacement:
		return "disconnected placement"
	case ErrPlacementOverBrick:
		return "placement over bricked square"
	case ErrPhonyWordFormed:
		return "phony word formed"
	case ErrExchangeInsufficientTiles:
		return "not enough tiles in bag to exchange"
	case ErrBoardPositionMismatch:
		return "board position mismatch"
	case ErrInvalidPlayerIndex:
		return "invalid player index"
	case ErrInvalidParameter:
		return "invalid parameter"
	case ErrWrongBagState:
		return "wrong bag state for this operation"
	default:
		return "unknown error"
	}
}

// KernelError is a single entry in an ErrorStack: a code plus optional
// free-form context (e.g. the offending token).
type KernelError struct {
	Code    ErrorCode
	Context string
}

// Error implements the error interface.
func (e *KernelError) Error() string {
	if e.Context == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code.String(), e.Context)
}

// ErrorStack is an ordered list of KernelErrors. A nil or empty stack
// means "no error". Entries are appended in the order they were
// discovered; the first entry is never privileged over later ones —
// callers that only care about "did this fail" should just check Empty().
type ErrorStack []*KernelError

// Push appends a new error to the stack and returns the stack, so that
// call sites can write `errs = errs.Push(ErrTileNotInRack, tile)`.
func (es ErrorStack) Push(code ErrorCode, context string) ErrorStack {
	return append(es, &KernelError{Code: code, Context: context})
}

// Empty returns true if the stack holds no errors.
func (es ErrorStack) Empty() bool {
	return len(es) == 0
}

// Error renders every entry in the stack, joined by "; ".
func (es ErrorStack) Error() string {
	if es.Empty() {
		return ""
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Has returns true if the stack contains at least one error of the
// given code.
func (es ErrorStack) Has(code ErrorCode) bool {
	for _, e := range es {
		if e.Code == code {
			return true
		}
	}
	return false
}

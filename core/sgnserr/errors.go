// Package sgnserr defines the closed set of error kinds surfaced by the
// SGNS training core: OutOfRange, InvalidConfig, and Deserialize are
// returned to callers; Invariant is fatal.
package sgnserr

import (
	"errors"
	"fmt"
	"log/slog"
)

// Kind classifies an error returned by the training core.
type Kind int

const (
	// OutOfRange indicates an index not in vocabulary or not in [0, size).
	OutOfRange Kind = iota
	// InvalidConfig indicates a non-finite hyperparameter or a zero
	// embedding_dim/capacity.
	InvalidConfig
	// Deserialize indicates a truncated stream, unknown tag, or version
	// mismatch while loading a Model.
	Deserialize
	// Invariant indicates an internal consistency violation. Fatal.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case OutOfRange:
		return "out_of_range"
	case InvalidConfig:
		return "invalid_config"
	case Deserialize:
		return "deserialize"
	case Invariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so callers can classify it
// with errors.As without string matching.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sgns: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("sgns: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a classified error for operation op. Invariant is fatal:
// it logs the violation and panics rather than returning, so callers only
// ever see OutOfRange/InvalidConfig/Deserialize from this constructor.
func New(kind Kind, op string, msg string) error {
	return classify(&Error{Kind: kind, Op: op, Err: errors.New(msg)})
}

// Wrap classifies an existing error under op. Invariant is fatal, as in New.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return classify(&Error{Kind: kind, Op: op, Err: err})
}

func classify(e *Error) error {
	if e.Kind == Invariant {
		slog.Error("invariant violation", "op", e.Op, "error", e.Err)
		panic(e)
	}
	return e
}

// Is reports whether err was classified with kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

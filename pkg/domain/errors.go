package domain

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is returned when a file cannot be resolved through any search location.
var ErrFileNotFound = errors.New("file not found")

// ErrEmptyPath is returned when a lookup is requested for an empty file name.
var ErrEmptyPath = errors.New("empty file name")

// ErrCacheMiss is returned by digest caches when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// Exception is the library's runtime error.
// It carries a message and, optionally, the error that caused it.
type Exception struct {
	Msg   string
	Cause error
}

// NewException creates an Exception. cause may be nil.
func NewException(msg string, cause error) *Exception {
	return &Exception{Msg: msg, Cause: cause}
}

func (e *Exception) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

func (e *Exception) Unwrap() error {
	return e.Cause
}

// AssertionError is the panic value raised by Assert.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return "assertion failed: " + e.Msg
}

// Assert halts the current goroutine with an *AssertionError when cond is false.
// It is meant for programming errors, not for conditions callers should recover from.
func Assert(cond bool, msg string) {
	if !cond {
		panic(&AssertionError{Msg: msg})
	}
}

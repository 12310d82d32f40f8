// Package chainerr defines the tagged-variant error taxonomy shared by the
// validator and chain packages. The core never panics or throws across an
// API boundary; every public operation returns one of these codes instead.
package chainerr

import "fmt"

// Code identifies the kind of failure a validation or chain operation hit.
type Code string

const (
	DuplicateBlock     Code = "duplicate_block"
	BlockOutOfChain    Code = "block_out_of_chain"
	InvalidPuzzle      Code = "invalid_puzzle"
	BadReward          Code = "bad_reward"
	BadSignature       Code = "bad_signature"
	OutputNotFound     Code = "output_not_found"
	DoubleSpend        Code = "double_spend"
	InsufficientFunds  Code = "insufficient_funds"
	MempoolDuplicate   Code = "mempool_duplicate"
	MempoolConflict    Code = "mempool_conflict"
	MalformedRecord    Code = "malformed_record"
	ForkTooDeep        Code = "fork_too_deep"
)

// Reason sub-classifies a BlockOutOfChain error, per spec §4.6.
type Reason string

const (
	WrongIndex    Reason = "wrong_index"
	WrongPrev     Reason = "wrong_prev"
	BlockFromPast Reason = "block_from_past"
)

// Error is the concrete error type carried across API boundaries.
type Error struct {
	Code   Code
	Reason Reason // only set when Code == BlockOutOfChain
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Reason, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error with no wrapped cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf constructs an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error carrying an underlying cause.
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

// OutOfChain constructs a BlockOutOfChain error with the given reason.
func OutOfChain(reason Reason, msg string) *Error {
	return &Error{Code: BlockOutOfChain, Reason: reason, Msg: msg}
}

// Is reports whether err is itself a *Error with the given code. It does
// not unwrap: a *Error wrapped inside another error does not match.
func Is(err error, code Code) bool {
	ce, ok := err.(*Error)
	return ok && ce.Code == code
}

package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by dialects, adapters and connections.
var (
	ErrUnmappedType         = errors.New("logical type has no native mapping")
	ErrUnsupportedOperation = errors.New("operation not supported by dialect")
	ErrNoIdentity           = errors.New("no identity available")
	ErrNotConnected         = errors.New("not connected to database")
	ErrNoTransaction        = errors.New("no transaction in progress")
	ErrTxInProgress         = errors.New("transaction already in progress")
)

// UnmappedTypeError is returned when a dialect's catalog lacks a logical type.
type UnmappedTypeError struct {
	Dialect string
	Type    LogicalType
}

func (e *UnmappedTypeError) Error() string {
	return fmt.Sprintf("dialect %s: no native type for %s", e.Dialect, e.Type)
}

func (e *UnmappedTypeError) Unwrap() error { return ErrUnmappedType }

// UnsupportedOperationError is returned when a dialect cannot express a schema operation.
type UnsupportedOperationError struct {
	Dialect string
	Op      string
	Reason  string
}

func (e *UnsupportedOperationError) Error() string {
	msg := fmt.Sprintf("dialect %s does not support %s", e.Dialect, e.Op)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedOperationError) Unwrap() error { return ErrUnsupportedOperation }

// DDLError reports a failed schema operation with its table/column context.
type DDLError struct {
	Op        string
	Table     string
	Column    string
	Statement string
	Err       error
}

func (e *DDLError) Error() string {
	target := e.Table
	if e.Column != "" {
		target += "." + e.Column
	}
	if e.Statement != "" {
		return fmt.Sprintf("%s %s: statement %q: %v", e.Op, target, e.Statement, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Err)
}

func (e *DDLError) Unwrap() error { return e.Err }

// IdentityError reports that no generated key could be determined after an insert.
// It always matches ErrNoIdentity with errors.Is.
type IdentityError struct {
	Table    string
	Sequence string
	Err      error
}

func (e *IdentityError) Error() string {
	msg := "no identity available for table " + e.Table
	if e.Sequence != "" {
		msg += " (sequence " + e.Sequence + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IdentityError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNoIdentity}
	}
	return []error{ErrNoIdentity, e.Err}
}

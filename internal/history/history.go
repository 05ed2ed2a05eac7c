// Package history keeps a local journal of the schema changes applied to
// targets, stored in SQLite and migrated with goose.
package history

import (
	"errors"
	"time"
)

// Status is the outcome of an applied schema change.
type Status string

// Change outcomes.
const (
	StatusApplied Status = "applied"
	StatusFailed  Status = "failed"
)

// ErrNotOpen is returned when the store is used before Open.
var ErrNotOpen = errors.New("history store not opened")

// Change is one schema change run against a target.
type Change struct {
	ID         string    `json:"id" yaml:"id"`
	Op         string    `json:"op" yaml:"op"`
	Table      string    `json:"table" yaml:"table"`
	Column     string    `json:"column,omitempty" yaml:"column,omitempty"`
	Dialect    string    `json:"dialect" yaml:"dialect"`
	Target     string    `json:"target,omitempty" yaml:"target,omitempty"`
	Statements []string  `json:"statements" yaml:"statements"`
	Atomic     bool      `json:"atomic" yaml:"atomic"`
	Status     Status    `json:"status" yaml:"status"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	AppliedAt  time.Time `json:"applied_at" yaml:"applied_at"`
}

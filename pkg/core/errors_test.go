package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityError_MatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("relation does not exist")
	err := fmt.Errorf("insert: %w", &IdentityError{Table: "orders", Sequence: "orders_id_seq", Err: cause})

	assert.ErrorIs(t, err, ErrNoIdentity)
	assert.ErrorIs(t, err, cause)

	var idErr *IdentityError
	assert.ErrorAs(t, err, &idErr)
	assert.Equal(t, "orders", idErr.Table)
	assert.Contains(t, err.Error(), "orders_id_seq")
}

func TestIdentityError_WithoutCause(t *testing.T) {
	err := &IdentityError{Table: "orders"}
	assert.ErrorIs(t, err, ErrNoIdentity)
	assert.Equal(t, "no identity available for table orders", err.Error())
}

func TestDDLError(t *testing.T) {
	cause := errors.New("boom")
	err := &DDLError{Op: "change_column", Table: "users", Column: "age", Statement: "UPDATE users", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `change_column users.age: statement "UPDATE users": boom`, err.Error())
}

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	assert.ErrorIs(t, &UnmappedTypeError{Dialect: "x", Type: Binary}, ErrUnmappedType)
	assert.ErrorIs(t, &UnsupportedOperationError{Dialect: "sqlite", Op: "change_column_default"}, ErrUnsupportedOperation)
	assert.Equal(t, "dialect sqlite does not support rename: no", (&UnsupportedOperationError{Dialect: "sqlite", Op: "rename", Reason: "no"}).Error())
}

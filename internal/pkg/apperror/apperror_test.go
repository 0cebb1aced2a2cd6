package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, HTTPStatus(Validation("Name is required")))
	assert.Equal(t, 400, HTTPStatus(BusinessRule("Unit is already sold")))
	assert.Equal(t, 404, HTTPStatus(NotFound("Unit not found")))
	assert.Equal(t, 500, HTTPStatus(errors.New("disk I/O error")))
	assert.Equal(t, 500, HTTPStatus(Storage(errors.New("disk I/O error"))))
}

func TestStorage_KeepsClassifiedErrors(t *testing.T) {
	err := NotFound("Safe not found")
	assert.Same(t, err, Storage(err))
	assert.Nil(t, Storage(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create contract: %w", BusinessRule("Unit is not available"))
	assert.True(t, Is(err, KindBusinessRule))
	assert.Equal(t, "create contract: Unit is not available", err.Error())
}

func TestStorage_MessageHidesCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Storage(cause)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}

package error

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDomainError_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("drop table widget: %w", ErrNotFound)

	resp, ok := ResolveDomainError(err)

	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "DATA-002", resp.Code)
}

func TestResolveDomainError_Unknown(t *testing.T) {
	_, ok := ResolveDomainError(errors.New("boom"))
	assert.False(t, ok)

	_, ok = ResolveDomainError(nil)
	assert.False(t, ok)
}

func TestValidationError(t *testing.T) {
	_, cause := strconv.Atoi("abc")
	err := fmt.Errorf("validate team: %w", &ValidationError{Index: 3, Column: "name", Reason: "required", Err: cause})

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	var vErr *ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Equal(t, 3, vErr.Index)
		assert.Equal(t, "name", vErr.Column)
	}
	assert.Contains(t, err.Error(), "record 3")

	resp, ok := ResolveDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

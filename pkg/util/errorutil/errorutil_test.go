package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", NewInvalidCredentials())
	de := ToDomainError(wrapped)
	assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	assert.Equal(t, "Invalid username or password. Please try again.", de.Message)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	cause := errors.New("boom")
	de := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.ErrorIs(t, de, cause)
	assert.Nil(t, ToDomainError(nil))
}

func TestAccessErrors(t *testing.T) {
	inactive := ToDomainError(NewAccountInactive())
	assert.Equal(t, http.StatusForbidden, inactive.HTTPStatus)
	assert.Equal(t, "Account is inactive. Please contact your administrator.", inactive.Message)

	denied := ToDomainError(NewAccessDenied("settings"))
	assert.Equal(t, "ACCESS_DENIED", denied.Code)
	assert.Equal(t, "settings", denied.Details["view"])
}

package util_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/school-service/pkg/util"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := util.NewForbidden("school is not active", map[string]any{"schoolStatus": "SUSPENDED"})

	domainErr := util.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	assert.Equal(t, "SUSPENDED", domainErr.Details["schoolStatus"])
}

func TestToDomainErrorWrapsFiberError(t *testing.T) {
	domainErr := util.ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "invalid payload", domainErr.Message)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := util.ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorHidesInternalCause(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	domainErr := util.ToDomainError(cause)

	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "internal server error", domainErr.Message)
	// the cause stays available for logging
	assert.ErrorIs(t, domainErr, cause)
}

func TestUnauthenticatedShape(t *testing.T) {
	domainErr := util.ToDomainError(util.NewUnauthenticated("not authorized"))
	assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
	assert.Equal(t, "UNAUTHENTICATED", domainErr.Code)
}

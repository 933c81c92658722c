package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := NewPermissionDenied("not allowed")

	domainErr := ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "PERMISSION_DENIED", domainErr.Code)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	assert.Equal(t, "not allowed", domainErr.Message)
}

func TestToDomainErrorWrapped(t *testing.T) {
	cause := errors.New("socket closed")
	err := fmt.Errorf("outer: %w", NewPlatformError("could not delete channel", cause))

	domainErr := ToDomainError(err)
	assert.Equal(t, "PLATFORM_ERROR", domainErr.Code)
	assert.ErrorIs(t, domainErr, cause)
}

func TestToDomainErrorGeneric(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

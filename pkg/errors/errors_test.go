package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError_UnwrapsThroughChains(t *testing.T) {
	base := NewNotFoundError("profile")
	wrapped := fmt.Errorf("loading caller data: %w", base)

	appErr := GetAppError(wrapped)

	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, IsNotFound(wrapped))
}

func TestGetAppError_NilForPlainErrors(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("boom")))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestWrap_PreservesAppErrorType(t *testing.T) {
	err := Wrap(NewConflictError("share exists"), "creating share")

	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "creating share")
}

func TestWrap_ConvertsPlainErrorsToInternal(t *testing.T) {
	err := Wrap(errors.New("boom"), "purging data")

	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
	assert.ErrorContains(t, err, "purging data")
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "anything"))
}

func TestConstructors_CarryHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("x").HTTPStatus)
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x").HTTPStatus)
	assert.Equal(t, http.StatusConflict, NewConflictError("x").HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("").HTTPStatus)
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("").HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x").HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, NewDatabaseError("op", nil).HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, NewExternalError("svc", nil).HTTPStatus)
}

func TestCollaboratorErrors_KeepCauseOutOfMessage(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := NewDatabaseError("query", cause)

	assert.NotContains(t, err.Message, cause.Error())
	assert.ErrorIs(t, err, cause)
}

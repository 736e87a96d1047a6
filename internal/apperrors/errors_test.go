package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromWrappedAppError(t *testing.T) {
	err := fmt.Errorf("failed to update message: %w", Forbidden("Only the author can edit a message"))

	appErr := From(err)
	assert.Equal(t, CodePermissionDenied, appErr.Code)
	assert.Equal(t, http.StatusForbidden, appErr.Code.HTTPStatus())
	assert.True(t, IsCode(err, CodePermissionDenied))
}

func TestFromPlainErrorIsInternal(t *testing.T) {
	appErr := From(errors.New("connection reset"))

	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, "internal error", appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code.HTTPStatus())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal("failed to sign token", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to sign token: boom", err.Error())
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidArgument:    http.StatusBadRequest,
		CodeNotFound:           http.StatusNotFound,
		CodeAlreadyExists:      http.StatusConflict,
		CodeUnauthenticated:    http.StatusUnauthorized,
		CodeFailedPrecondition: http.StatusUnprocessableEntity,
		CodeUnavailable:        http.StatusServiceUnavailable,
		CodeUnknown:            http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, code.HTTPStatus(), code)
	}
}

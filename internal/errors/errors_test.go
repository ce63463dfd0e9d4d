package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	e := ErrorResponse{Status: http.StatusBadRequest, Message: "abc"}
	assert.Equal(t, "abc", e.Error())
	assert.Equal(t, http.StatusBadRequest, e.StatusCode())
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, InternalServerError("test").StatusCode())
	assert.Equal(t, http.StatusNotFound, NotFound("test").StatusCode())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("test").StatusCode())
	assert.Equal(t, http.StatusForbidden, Forbidden("test").StatusCode())
	assert.Equal(t, http.StatusBadRequest, BadRequest("test").StatusCode())
	assert.Equal(t, http.StatusConflict, Conflict("test").StatusCode())
}

func TestNotFoundWithHint(t *testing.T) {
	e := NotFoundWithHint("no user", "تلميح")
	assert.Equal(t, http.StatusNotFound, e.StatusCode())
	assert.Equal(t, "no user", e.Message)
	assert.Equal(t, "تلميح", e.HintAr)
}

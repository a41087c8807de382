package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
)

func TestEncodeOmitsEmptyDetail(t *testing.T) {
	data, contentType, err := errs.Newf(errs.NotFound, "Task not found").Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"message":"Task not found"}`, string(data))
}

func TestEncodeCarriesDetail(t *testing.T) {
	cause := errors.New("FOREIGN KEY constraint failed")
	e := errs.New(errs.StorageFault, "Error deleting user", fmt.Errorf("user repository delete: %w", cause))

	data, _, err := e.Encode()
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Error deleting user", body["message"])
	assert.Equal(t, "user repository delete: FOREIGN KEY constraint failed", body["error"])
	assert.ErrorIs(t, e, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code errs.Code
		want int
	}{
		{errs.NotFound, http.StatusNotFound},
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.StorageFault, http.StatusBadRequest},
		{errs.Unauthenticated, http.StatusUnauthorized},
		{errs.Internal, http.StatusInternalServerError},
		{errs.InternalOnlyLog, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, errs.Newf(tt.code, "x").HTTPStatus())
		})
	}
}

func TestCallerIsRecorded(t *testing.T) {
	e := errs.Newf(errs.Internal, "boom")
	assert.True(t, strings.HasSuffix(e.FuncName, "TestCallerIsRecorded"), e.FuncName)
	assert.Contains(t, e.FileName, "errs_test.go")
}

func TestGetError(t *testing.T) {
	e := errs.Newf(errs.NotFound, "User not found")
	wrapped := fmt.Errorf("handler: %w", e)

	assert.True(t, errs.IsError(wrapped))
	assert.Same(t, e, errs.GetError(wrapped))
	assert.Nil(t, errs.GetError(errors.New("plain")))
}

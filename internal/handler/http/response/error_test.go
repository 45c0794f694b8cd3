package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/regularization"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/wfh"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{attendance.ErrUntrustedTimestamp, http.StatusUnprocessableEntity, CodeUnprocessable},
		{attendance.ErrStampOutOfWindow, http.StatusUnprocessableEntity, CodeUnprocessable},
		{attendance.ErrInvalidTimeSequence, http.StatusUnprocessableEntity, CodeUnprocessable},
		{attendance.ErrDuplicateCheckIn, http.StatusConflict, CodeConflict},
		{fmt.Errorf("close session: %w", attendance.ErrNoOpenCheckIn), http.StatusConflict, CodeConflict},
		{attendance.ErrOutOfGeofence, http.StatusForbidden, CodeForbidden},
		{wfh.ErrRequestNotFound, http.StatusNotFound, CodeNotFound},
		{regularization.ErrFutureDate, http.StatusBadRequest, CodeBadRequest},
		{validator.ValidationErrors{{Field: "source", Message: "bad"}}, http.StatusUnprocessableEntity, CodeValidation},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)

			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, c.code, body.Error.Code)
		})
	}
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{Page: 2, Limit: 1, TotalItems: 3, TotalPages: 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
		Meta    Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"a"}, body.Data)
	assert.Equal(t, 3, body.Meta.TotalPages)
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/service"
)

func TestResponder_Fail(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{&service.ValidationError{Missing: []string{"Q"}}, http.StatusBadRequest, "Missing answers for required questions: Q"},
		{service.ErrDuplicateUsername, http.StatusBadRequest, "Username already taken"},
		{service.ErrUserNotFound, http.StatusBadRequest, "User not found"},
		{service.ErrPublicResultsDisabled, http.StatusUnauthorized, "Public access not enabled"},
		{fmt.Errorf("load: %w", service.ErrForbidden), http.StatusForbidden, "User not authorized"},
		{fmt.Errorf("login alice: %w", service.ErrInvalidCredentials), http.StatusBadRequest, "Incorrect password"},
		{fmt.Errorf("register: %w", service.ErrDuplicateEmail), http.StatusBadRequest, "User already exists"},
		{fmt.Errorf("verify: %w", service.ErrUnauthorized), http.StatusUnauthorized, "Invalid or expired token"},
		{service.ErrNotFound, http.StatusNotFound, "Survey not found"},
		{errors.New("socket closed"), http.StatusInternalServerError, "Server Error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Responder{}.fail(rec, "Survey", tc.err)

		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		var body model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.Status)
		assert.Equal(t, tc.message, body.Message)
		assert.Empty(t, body.Detail)
	}
}

func TestResponder_InternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Responder{ShowInternalErrors: true}.fail(rec, "Survey", errors.New("socket closed"))

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "socket closed", body.Detail)
}

func TestDecode_BodyLimit(t *testing.T) {
	type payload struct {
		Title string `json:"title" validate:"required"`
	}

	var ok payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Team"}`))
	require.NoError(t, decode(httptest.NewRecorder(), req, &ok))
	assert.Equal(t, "Team", ok.Title)

	big := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	var dst payload
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	err := decode(httptest.NewRecorder(), req, &dst)
	require.Error(t, err)
	assert.Equal(t, "request body too large", err.Error())
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "team_offsite_2024_responses", exportName("Team Offsite: 2024!"))
	assert.Equal(t, "survey", exportName("???"))
}

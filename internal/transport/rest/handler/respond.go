package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/service"
)

var validate = validator.New()

// Responder writes JSON bodies and maps service errors to status codes.
// ShowInternalErrors exposes the raw text of unexpected errors.
type Responder struct {
	ShowInternalErrors bool
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Status: status, Message: message})
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// decode reads a JSON body into dst and runs its validate tags
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.New("request body too large")
		}
		return errors.New("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "please include a valid email"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// fail maps err to a status code; resource names the entity in 404 messages
func (rs Responder) fail(w http.ResponseWriter, resource string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: verr.Error(),
			Missing: verr.Missing,
			Invalid: verr.Invalid,
		})
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Incorrect password")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrPublicResultsDisabled):
		writeError(w, http.StatusUnauthorized, "Public access not enabled")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "User not authorized")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	default:
		slog.Error("request failed", "error", err)
		resp := model.ErrorResponse{Status: http.StatusInternalServerError, Message: "Server Error"}
		if rs.ShowInternalErrors {
			resp.Detail = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/service"
	"github.com/saran8796/survey-application/internal/transport/rest/middleware"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	Responder
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(rs Responder, surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{Responder: rs, surveySvc: surveySvc}
}

// Create handles POST /api/surveys
// @Summary Create a survey
// @Tags surveys
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body model.CreateSurveyRequest true "Survey"
// @Success 201 {object} model.Survey
// @Failure 400 {object} model.ErrorResponse
// @Router /surveys [post]
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no token, authorization denied")
		return
	}

	var req model.CreateSurveyRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	survey, err := h.surveySvc.Create(r.Context(), userID, req)
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}

	writeJSON(w, http.StatusCreated, survey)
}

// List handles GET /api/surveys
// @Summary List all surveys, newest first
// @Tags surveys
// @Produce json
// @Success 200 {array} model.SurveySummary
// @Router /surveys [get]
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.List(r.Context())
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

// Mine handles GET /api/surveys/my
func (h *SurveyHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	surveys, err := h.surveySvc.ListByOwner(r.Context(), userID)
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

// Get handles GET /api/surveys/{id}
// @Summary Get one survey
// @Tags surveys
// @Produce json
// @Param id path string true "Survey ID"
// @Success 200 {object} model.Survey
// @Failure 404 {object} model.ErrorResponse
// @Router /surveys/{id} [get]
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Delete handles DELETE /api/surveys/{id}
// @Summary Delete a survey and its responses
// @Tags surveys
// @Produce json
// @Security TokenAuth
// @Param id path string true "Survey ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.surveySvc.Delete(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Survey removed"})
}

// TogglePublic handles PUT /api/surveys/{id}/toggle-public
// @Summary Flip public access to results
// @Tags surveys
// @Produce json
// @Security TokenAuth
// @Param id path string true "Survey ID"
// @Success 200 {object} model.Survey
// @Failure 403 {object} model.ErrorResponse
// @Router /surveys/{id}/toggle-public [put]
func (h *SurveyHandler) TogglePublic(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	survey, err := h.surveySvc.TogglePublicResults(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

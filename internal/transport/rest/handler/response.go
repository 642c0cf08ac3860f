package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/service"
	"github.com/saran8796/survey-application/internal/transport/rest/middleware"
)

// ResponseHandler handles response submission and listing
type ResponseHandler struct {
	Responder
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(rs Responder, responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{Responder: rs, responseSvc: responseSvc}
}

// Submit handles POST /api/surveys/{id}/responses
// @Summary Submit a response; a token is optional
// @Tags responses
// @Accept json
// @Produce json
// @Param id path string true "Survey ID"
// @Param body body model.SubmitResponseRequest true "Answers"
// @Success 201 {object} model.Response
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /surveys/{id}/responses [post]
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponseRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var submitter *primitive.ObjectID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		submitter = &userID
	}

	resp, err := h.responseSvc.Submit(r.Context(), mux.Vars(r)["id"], req.Answers, submitter)
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/surveys/{id}/responses
// @Summary List responses (owner only)
// @Tags responses
// @Produce json
// @Security TokenAuth
// @Param id path string true "Survey ID"
// @Success 200 {array} model.Response
// @Failure 403 {object} model.ErrorResponse
// @Router /surveys/{id}/responses [get]
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	responses, err := h.responseSvc.List(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// ListPublic handles GET /api/surveys/{id}/responses/public
// @Summary List responses of a survey with public results
// @Tags responses
// @Produce json
// @Param id path string true "Survey ID"
// @Success 200 {array} model.Response
// @Failure 401 {object} model.ErrorResponse
// @Router /surveys/{id}/responses/public [get]
func (h *ResponseHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	responses, err := h.responseSvc.ListPublic(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

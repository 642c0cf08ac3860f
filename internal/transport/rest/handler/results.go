package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"

	"github.com/saran8796/survey-application/internal/service"
	"github.com/saran8796/survey-application/internal/transport/rest/middleware"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ResultsHandler serves aggregated results and CSV export
type ResultsHandler struct {
	Responder
	resultsSvc *service.ResultsService
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(rs Responder, resultsSvc *service.ResultsService) *ResultsHandler {
	return &ResultsHandler{Responder: rs, resultsSvc: resultsSvc}
}

// Results handles GET /api/surveys/{id}/results
// @Summary Per-question results (owner only)
// @Tags results
// @Produce json
// @Security TokenAuth
// @Param id path string true "Survey ID"
// @Success 200 {object} model.SurveyResults
// @Router /surveys/{id}/results [get]
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	results, err := h.resultsSvc.Results(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// PublicResults handles GET /api/surveys/{id}/results/public
// @Summary Per-question results of a survey with public results
// @Tags results
// @Produce json
// @Param id path string true "Survey ID"
// @Success 200 {object} model.SurveyResults
// @Failure 401 {object} model.ErrorResponse
// @Router /surveys/{id}/results/public [get]
func (h *ResultsHandler) PublicResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultsSvc.PublicResults(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Export handles GET /api/surveys/{id}/export
// @Summary Download responses as CSV (owner only)
// @Tags results
// @Produce text/csv
// @Security TokenAuth
// @Param id path string true "Survey ID"
// @Success 200 {file} file
// @Router /surveys/{id}/export [get]
func (h *ResultsHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	survey, data, err := h.resultsSvc.ExportCSV(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		h.fail(w, "Survey", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, exportName(survey.Title)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func exportName(title string) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if name == "" {
		return "survey"
	}
	return name + "_responses"
}

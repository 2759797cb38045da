package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ppif-diagnostic/internal/app"
	"ppif-diagnostic/internal/domain"
	"ppif-diagnostic/internal/report"
)

type createOrganizationRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

func (s *Server) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	org, err := s.service.CreateOrganization(r.Context(), req.Name, req.Domain)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := s.service.Organization(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

type createAssessmentRequest struct {
	OrganizationID string   `json:"organizationId"`
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Tags           []string `json:"tags"`
}

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.OrganizationID == "" || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "organizationId and name are required")
		return
	}
	assessment, err := s.service.CreateAssessment(r.Context(), req.OrganizationID, req.Name, req.Version, req.Tags)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assessment)
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	status := domain.AssessmentStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status))
		return
	}
	assessments, err := s.service.ListAssessments(r.Context(), r.URL.Query().Get("organizationId"), status)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if assessments == nil {
		assessments = []domain.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.service.Assessment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

type patchAssessmentRequest struct {
	Name         *string            `json:"name"`
	Notes        *string            `json:"notes"`
	Tags         *[]string          `json:"tags"`
	CustomFields *map[string]string `json:"customFields"`
}

func (s *Server) handlePatchAssessment(w http.ResponseWriter, r *http.Request) {
	var req patchAssessmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	assessment, err := s.service.UpdateAssessment(r.Context(), mux.Vars(r)["id"], app.AssessmentPatch{
		Name:         req.Name,
		Notes:        req.Notes,
		Tags:         req.Tags,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.service.Catalog(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

type submitAnswerRequest struct {
	QuestionID string          `json:"questionId"`
	Value      json.RawMessage `json:"value"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}
	value, err := rawValueToString(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	answer, err := s.service.SubmitAnswer(r.Context(), mux.Vars(r)["id"], req.QuestionID, value)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

// rawValueToString accepts answer values as JSON strings or numbers;
// numeric questions are commonly submitted unquoted.
func rawValueToString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("value is required")
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String(), nil
	}
	return "", fmt.Errorf("value must be a string or a number")
}

func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := s.service.Answers(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	out := make([]domain.Answer, 0, len(answers))
	for _, a := range answers {
		out = append(out, a)
	}
	writeJSON(w, http.StatusOK, out)
}

type completeResponse struct {
	AssessmentID    string           `json:"assessmentId"`
	Status          string           `json:"status"`
	OverallMaturity *float64         `json:"overallMaturity"`
	RiskLevel       domain.RiskLevel `json:"riskLevel,omitempty"`
	Scores          int              `json:"scores"`
	Findings        int              `json:"findings"`
	Recommendations int              `json:"recommendations"`
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	override := r.URL.Query().Get("override_critical") == "true"
	summary, err := s.service.Complete(r.Context(), mux.Vars(r)["id"], override)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completeResponse{
		AssessmentID:    summary.Assessment.ID,
		Status:          string(summary.Assessment.Status),
		OverallMaturity: summary.OverallMaturity,
		RiskLevel:       summary.RiskLevel,
		Scores:          len(summary.Scores),
		Findings:        len(summary.Findings),
		Recommendations: len(summary.Recommendations),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type cloneRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleClone(w http.ResponseWriter, r *http.Request) {
	var req cloneRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	clone, err := s.service.Clone(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clone)
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Build(summary, s.now()))
}

func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", summary.Assessment.ID+"-backlog.csv"))
	if err := report.WriteCSV(w, summary); err != nil {
		s.log.Error("write csv report", zap.Error(err))
	}
}

type recommendationStatusRequest struct {
	Status domain.RecommendationStatus `json:"status"`
}

func (s *Server) handleRecommendationStatus(w http.ResponseWriter, r *http.Request) {
	var req recommendationStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if !req.Status.IsValid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
		return
	}
	rec, err := s.service.UpdateRecommendationStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

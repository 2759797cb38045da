package http

import (
	"net/http"
	"time"

	"ppif-diagnostic/internal/roi"
)

type roiResponse struct {
	Computed roi.ScenarioSet `json:"computed"`
	Warnings []string        `json:"warnings"`
	Metadata roiMetadata     `json:"metadata"`
}

type roiMetadata struct {
	Version           string    `json:"version,omitempty"`
	Region            string    `json:"region"`
	TimeHorizonMonths int       `json:"time_horizon_months"`
	MaturityAdjusted  bool      `json:"maturity_adjusted"`
	ComputedAt        time.Time `json:"computed_at"`
}

func (s *Server) handleROICompute(w http.ResponseWriter, r *http.Request) {
	var req roi.Request
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	computed, err := roi.ComputeAll(req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	warnings := []string{}
	if req.MaturityScore == nil {
		warnings = append(warnings, "ppi_f_maturity_score not provided; scenario defaults applied without maturity adjustment")
	}
	if computed.Conservative.TotalImpact == 0 {
		warnings = append(warnings, "all impact inputs are zero; payback is undefined")
	}

	writeJSON(w, http.StatusOK, roiResponse{
		Computed: computed,
		Warnings: warnings,
		Metadata: roiMetadata{
			Version:           req.Version,
			Region:            req.Region,
			TimeHorizonMonths: req.TimeHorizonMonths,
			MaturityAdjusted:  req.MaturityScore != nil,
			ComputedAt:        s.now().UTC(),
		},
	})
}

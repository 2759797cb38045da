// Package report renders completed assessment summaries into export formats:
// a self-contained JSON report and a CSV backlog of recommendations.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"ppif-diagnostic/internal/domain"
	"ppif-diagnostic/internal/recommend"
)

// Report is the exportable JSON view of a completed assessment.
type Report struct {
	GeneratedAt     time.Time         `json:"generatedAt"`
	Assessment      domain.Assessment `json:"assessment"`
	OverallMaturity *float64          `json:"overallMaturity"`
	RiskLevel       domain.RiskLevel  `json:"riskLevel,omitempty"`
	Scores          []domain.Score    `json:"scores"`
	Findings        []domain.Finding  `json:"findings"`
	Backlog         []BacklogItem     `json:"backlog"`
}

// BacklogItem is a recommendation annotated with its prioritization quadrant.
type BacklogItem struct {
	domain.Recommendation
	Quadrant recommend.Quadrant `json:"quadrant"`
}

// Build assembles the JSON report from a summary.
func Build(summary domain.Summary, now time.Time) Report {
	backlog := make([]BacklogItem, 0, len(summary.Recommendations))
	for _, rec := range summary.Recommendations {
		backlog = append(backlog, BacklogItem{
			Recommendation: rec,
			Quadrant:       recommend.QuadrantFor(rec.Effort, rec.Impact),
		})
	}
	return Report{
		GeneratedAt:     now,
		Assessment:      summary.Assessment,
		OverallMaturity: summary.OverallMaturity,
		RiskLevel:       summary.RiskLevel,
		Scores:          summary.Scores,
		Findings:        summary.Findings,
		Backlog:         backlog,
	}
}

// WriteCSV streams the recommendation backlog as CSV, ordered as given
// (the service sorts by descending priority).
func WriteCSV(w io.Writer, summary domain.Summary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"priority", "dimension", "title", "description",
		"effort", "impact", "quadrant", "timeline", "kpi", "status",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range summary.Recommendations {
		row := []string{
			fmt.Sprintf("%d", rec.Priority),
			string(rec.Dimension),
			rec.Title,
			rec.Description,
			string(rec.Effort),
			string(rec.Impact),
			string(recommend.QuadrantFor(rec.Effort, rec.Impact)),
			rec.Timeline,
			rec.KPI,
			string(rec.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Package recommend turns dimension scores into a prioritized backlog of
// improvement recommendations.
package recommend

import (
	"sort"

	"ppif-diagnostic/internal/domain"
)

// Quadrant names the prioritization matrix cell for a recommendation.
type Quadrant string

const (
	QuadrantQuickWins      Quadrant = "quick-wins"
	QuadrantMajorProjects  Quadrant = "major-projects"
	QuadrantFillIns        Quadrant = "fill-ins"
	QuadrantThanklessTasks Quadrant = "thankless-tasks"
)

// QuadrantFor classifies a recommendation in the 2x2 impact/effort matrix.
// Impact counts as high only at the high level; effort counts as high only
// at the high level, so medium-effort items land on the favorable side.
func QuadrantFor(effort, impact domain.Level) Quadrant {
	highImpact := impact == domain.LevelHigh
	highEffort := effort == domain.LevelHigh
	switch {
	case highImpact && !highEffort:
		return QuadrantQuickWins
	case highImpact && highEffort:
		return QuadrantMajorProjects
	case !highImpact && !highEffort:
		return QuadrantFillIns
	default:
		return QuadrantThanklessTasks
	}
}

// Priority ranks a recommendation; larger means more urgent. Impact dominates,
// lower effort breaks ties upward, and lower dimension maturity adds urgency:
//
//	100*impact + 10*(3-effort) + round((5-maturity)*2)
//
// so a high-impact low-effort item in a weak dimension always outranks a
// low-impact high-effort one, matching the matrix quadrant ordering.
func Priority(effort, impact domain.Level, dimensionMaturity float64) int {
	urgency := int((5.0-dimensionMaturity)*2.0 + 0.5)
	if urgency < 0 {
		urgency = 0
	}
	if urgency > 10 {
		urgency = 10
	}
	return 100*levelRank(impact) + 10*(3-levelRank(effort)) + urgency
}

func levelRank(l domain.Level) int {
	switch l {
	case domain.LevelHigh:
		return 3
	case domain.LevelMedium:
		return 2
	default:
		return 1
	}
}

// Generate expands the rule table against the computed dimension scores.
// Every result starts in status pending; the slice comes back sorted by
// descending priority.
func Generate(assessmentID string, scores []domain.Score) []domain.Recommendation {
	var out []domain.Recommendation
	for _, score := range scores {
		dimensionRules, ok := rules[score.Dimension]
		if !ok {
			continue
		}
		b := bandFor(score.MaturityScore)
		templates := append([]template(nil), dimensionRules[b]...)
		if b != bandLow {
			templates = append(templates, dimensionRules[bandLow]...)
		}
		for _, tmpl := range templates {
			out = append(out, domain.Recommendation{
				AssessmentID: assessmentID,
				Dimension:    score.Dimension,
				Title:        tmpl.Title,
				Description:  tmpl.Description,
				Effort:       tmpl.Effort,
				Impact:       tmpl.Impact,
				Timeline:     tmpl.Timeline,
				KPI:          tmpl.KPI,
				Priority:     Priority(tmpl.Effort, tmpl.Impact, score.MaturityScore),
				Status:       domain.RecommendationPending,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

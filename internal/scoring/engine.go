package scoring

import (
	"fmt"
	"strings"

	"ppif-diagnostic/internal/domain"
)

// criticalCap bounds a dimension's maturity when any critical question in it
// scores below the cap value.
const criticalCap = 2.0

// DimensionScore folds the answers for one dimension into a Score.
//
// Unanswered non-critical questions are treated as not applicable and drop
// out of the denominator. Unanswered critical questions contribute their
// weight at zero points and trip the cap. The second return is false when
// the dimension has no applicable questions at all; callers must surface
// that as "undefined", never as 0.0.
func DimensionScore(assessmentID string, dim domain.Dimension, questions []domain.Question, answers map[string]domain.Answer) (domain.Score, bool) {
	var (
		weightedSum float64
		totalWeight float64
		capped      bool
	)

	for _, q := range questions {
		if q.Dimension != dim {
			continue
		}
		answer, answered := answers[q.ID]
		if !answered || answer.Maturity == nil {
			if q.Critical && !answered {
				weightedSum += 0
				totalWeight += q.Weight
				capped = true
			}
			continue
		}
		point := *answer.Maturity
		weightedSum += point * q.Weight
		totalWeight += q.Weight
		if q.Critical && point < criticalCap {
			capped = true
		}
	}

	if totalWeight == 0 {
		return domain.Score{}, false
	}

	maxPossible := 5.0 * totalWeight
	maturity := weightedSum / totalWeight
	percentage := weightedSum / maxPossible * 100.0

	if capped {
		if maturity > criticalCap {
			maturity = criticalCap
		}
		if percentage > criticalCap/5.0*100.0 {
			percentage = criticalCap / 5.0 * 100.0
		}
	}

	return domain.Score{
		AssessmentID:     assessmentID,
		Dimension:        dim,
		MaturityScore:    maturity,
		WeightedScore:    weightedSum,
		MaxPossibleScore: maxPossible,
		Percentage:       percentage,
	}, true
}

// AllScores computes every defined dimension score for an assessment.
func AllScores(assessmentID string, catalog domain.Catalog, answers map[string]domain.Answer) []domain.Score {
	scores := make([]domain.Score, 0, 4)
	for _, dim := range domain.Dimensions() {
		if score, ok := DimensionScore(assessmentID, dim, catalog.Questions, answers); ok {
			scores = append(scores, score)
		}
	}
	return scores
}

// Overall returns the unweighted mean of the defined dimension scores.
// The second return is false when no dimension produced a score.
func Overall(scores []domain.Score) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.MaturityScore
	}
	return sum / float64(len(scores)), true
}

// UnansweredCritical lists critical catalog questions without an answer.
func UnansweredCritical(catalog domain.Catalog, answers map[string]domain.Answer) []string {
	var ids []string
	for _, q := range catalog.Questions {
		if !q.Critical {
			continue
		}
		if _, ok := answers[q.ID]; !ok {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Findings derives observations from dimension scores and individual answers.
// Dimension-level gaps come first, then low-scoring answers with severity
// scaled from the point value.
func Findings(assessmentID string, catalog domain.Catalog, scores []domain.Score, answers map[string]domain.Answer) []domain.Finding {
	var findings []domain.Finding

	for _, score := range scores {
		label := dimensionLabel(score.Dimension)
		switch {
		case score.MaturityScore < 2.0:
			findings = append(findings, domain.Finding{
				AssessmentID: assessmentID,
				Dimension:    score.Dimension,
				Severity:     domain.SeverityCritical,
				Title:        fmt.Sprintf("Critical Gap in %s", label),
				Description:  fmt.Sprintf("Maturity score of %.1f/5.0 indicates critical gaps requiring immediate attention.", score.MaturityScore),
			})
		case score.MaturityScore < 3.0:
			findings = append(findings, domain.Finding{
				AssessmentID: assessmentID,
				Dimension:    score.Dimension,
				Severity:     domain.SeverityHigh,
				Title:        fmt.Sprintf("Significant Gap in %s", label),
				Description:  fmt.Sprintf("Maturity score of %.1f/5.0 indicates significant improvement opportunities.", score.MaturityScore),
			})
		}
	}

	for _, q := range catalog.Questions {
		answer, ok := answers[q.ID]
		if !ok || answer.Maturity == nil {
			continue
		}
		point := *answer.Maturity
		severity, flagged := answerSeverity(point)
		if !flagged {
			continue
		}
		findings = append(findings, domain.Finding{
			AssessmentID: assessmentID,
			Dimension:    q.Dimension,
			Severity:     severity,
			Title:        fmt.Sprintf("Low Score on: %s", truncate(q.Text, 50)),
			Description:  fmt.Sprintf("This question received a maturity score of %.1f/5.0, indicating areas for improvement.", point),
			QuestionID:   q.ID,
		})
	}
	return findings
}

// answerSeverity scales finding severity from the answer's point value:
// <1 critical, <2 high, <3 medium; 3 and above is not flagged.
func answerSeverity(point float64) (domain.Severity, bool) {
	switch {
	case point < 1.0:
		return domain.SeverityCritical, true
	case point < 2.0:
		return domain.SeverityHigh, true
	case point < 3.0:
		return domain.SeverityMedium, true
	}
	return "", false
}

func dimensionLabel(d domain.Dimension) string {
	words := strings.Split(string(d), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

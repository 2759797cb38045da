package domain

import "time"

// NumericBand maps a threshold on the raw metric value to a maturity score.
type NumericBand struct {
	Bound float64 `json:"bound"`
	Score float64 `json:"score"`
}

// NumericScale converts a raw numeric answer to a 0-5 maturity score.
// Bands must be sorted by ascending Bound. Directionality is per question:
// with LowerIsBetter set (e.g. P95 latency) the first band whose Bound is
// >= the value applies; otherwise (e.g. automation coverage) the last band
// whose Bound is <= the value applies.
type NumericScale struct {
	LowerIsBetter bool          `json:"lowerIsBetter"`
	Bands         []NumericBand `json:"bands"`
}

// ScoreFor returns the maturity score for a raw value. The second return is
// false when the scale has no bands.
func (s NumericScale) ScoreFor(value float64) (float64, bool) {
	if len(s.Bands) == 0 {
		return 0, false
	}
	if s.LowerIsBetter {
		for _, b := range s.Bands {
			if value <= b.Bound {
				return b.Score, true
			}
		}
		// Worse than the last band.
		return s.Bands[len(s.Bands)-1].Score, true
	}
	matched := false
	score := 0.0
	for _, b := range s.Bands {
		if value >= b.Bound {
			score = b.Score
			matched = true
		}
	}
	if !matched {
		return s.Bands[0].Score, true
	}
	return score, true
}

// Question is an immutable catalog entry. MaturityMapping maps raw answer
// values to 0-5 maturity points; Numeric carries the threshold scale for
// numeric questions.
type Question struct {
	ID              string             `json:"id"`
	Dimension       Dimension          `json:"dimension"`
	Type            QuestionType       `json:"questionType"`
	Text            string             `json:"questionText"`
	Options         []string           `json:"options,omitempty"`
	Weight          float64            `json:"weight"`
	Order           int                `json:"order"`
	Critical        bool               `json:"isCritical"`
	MaturityMapping map[string]float64 `json:"maturityMapping,omitempty"`
	Numeric         *NumericScale      `json:"numeric,omitempty"`
}

// Catalog is the full question set, grouped on demand.
type Catalog struct {
	Questions []Question `json:"questions"`
}

// ByDimension returns the catalog questions for one dimension.
func (c Catalog) ByDimension(d Dimension) []Question {
	var out []Question
	for _, q := range c.Questions {
		if q.Dimension == d {
			out = append(out, q)
		}
	}
	return out
}

// Find returns the question with the given ID.
func (c Catalog) Find(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Answer is the stored response for one (assessment, question) pair.
// Maturity is computed at submit time; nil marks a qualitative answer that
// carries no maturity signal (free text without a mapping).
type Answer struct {
	AssessmentID string    `json:"assessmentId"`
	QuestionID   string    `json:"questionId"`
	Value        string    `json:"answerValue"`
	Maturity     *float64  `json:"maturityScore,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Organization owns assessments. APIKey, when set, gates API access.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	APIKey    string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Assessment is a single run of the questionnaire by one organization.
type Assessment struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organizationId"`
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Status         AssessmentStatus  `json:"status"`
	Tags           []string          `json:"tags,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	CustomFields   map[string]string `json:"customFields,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
}

// Score is the computed result for one (assessment, dimension). A dimension
// with zero applicable questions produces no Score row at all; absence is the
// "undefined" signal and is never encoded as 0.0.
type Score struct {
	AssessmentID     string    `json:"assessmentId"`
	Dimension        Dimension `json:"dimension"`
	MaturityScore    float64   `json:"maturityScore"`
	WeightedScore    float64   `json:"weightedScore"`
	MaxPossibleScore float64   `json:"maxPossibleScore"`
	Percentage       float64   `json:"percentage"`
}

// Finding is a derived observation; not independently editable.
type Finding struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessmentId"`
	Dimension    Dimension `json:"dimension"`
	Severity     Severity  `json:"severity"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	QuestionID   string    `json:"questionId,omitempty"`
}

// Recommendation is derived at completion; Status stays user-mutable
// afterwards, independent of score recomputation.
type Recommendation struct {
	ID           string               `json:"id"`
	AssessmentID string               `json:"assessmentId"`
	Dimension    Dimension            `json:"dimension"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Effort       Level                `json:"effort"`
	Impact       Level                `json:"impact"`
	Timeline     string               `json:"timeline"`
	Priority     int                  `json:"priority"`
	KPI          string               `json:"kpi,omitempty"`
	Status       RecommendationStatus `json:"status"`
}

// Summary is the read-only completion view served to clients.
// OverallMaturity is nil when no dimension produced a defined score.
type Summary struct {
	Assessment      Assessment       `json:"assessment"`
	Scores          []Score          `json:"scores"`
	Findings        []Finding        `json:"findings"`
	Recommendations []Recommendation `json:"recommendations"`
	OverallMaturity *float64         `json:"overallMaturity"`
	RiskLevel       RiskLevel        `json:"riskLevel,omitempty"`
}

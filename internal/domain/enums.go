package domain

// Dimension is one of the four fixed PPI-F assessment categories.
type Dimension string

const (
	DimensionPerformance              Dimension = "performance"
	DimensionProductionReadiness      Dimension = "production_readiness"
	DimensionInfrastructureEfficiency Dimension = "infrastructure_efficiency"
	DimensionFailureResilience        Dimension = "failure_resilience"
)

// Dimensions returns all dimensions in their canonical order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionPerformance,
		DimensionProductionReadiness,
		DimensionInfrastructureEfficiency,
		DimensionFailureResilience,
	}
}

// IsValid reports whether the dimension is one of the four known values.
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionPerformance, DimensionProductionReadiness,
		DimensionInfrastructureEfficiency, DimensionFailureResilience:
		return true
	}
	return false
}

// QuestionType selects how an answer value is parsed and scored.
type QuestionType string

const (
	QuestionSingleSelect QuestionType = "single_select"
	QuestionMultiSelect  QuestionType = "multi_select"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFreeText     QuestionType = "free_text"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionSingleSelect, QuestionMultiSelect, QuestionNumeric, QuestionFreeText:
		return true
	}
	return false
}

// AssessmentStatus tracks the assessment lifecycle: draft moves to
// in_progress when the first answer arrives, and to completed only via an
// explicit completion call.
type AssessmentStatus string

const (
	StatusDraft      AssessmentStatus = "draft"
	StatusInProgress AssessmentStatus = "in_progress"
	StatusCompleted  AssessmentStatus = "completed"
)

func (s AssessmentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Severity classifies findings.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Level grades recommendation effort and impact.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

func (l Level) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// RecommendationStatus is user-mutable after completion.
type RecommendationStatus string

const (
	RecommendationPending    RecommendationStatus = "pending"
	RecommendationInProgress RecommendationStatus = "in_progress"
	RecommendationCompleted  RecommendationStatus = "completed"
	RecommendationSkipped    RecommendationStatus = "skipped"
)

func (s RecommendationStatus) IsValid() bool {
	switch s {
	case RecommendationPending, RecommendationInProgress,
		RecommendationCompleted, RecommendationSkipped:
		return true
	}
	return false
}

// RiskLevel is derived from overall maturity by fixed thresholds.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// RiskLevelFor maps overall maturity to a risk level:
// <2.0 critical, [2.0,3.0) high, [3.0,4.0) medium, >=4.0 low.
func RiskLevelFor(overallMaturity float64) RiskLevel {
	switch {
	case overallMaturity < 2.0:
		return RiskCritical
	case overallMaturity < 3.0:
		return RiskHigh
	case overallMaturity < 4.0:
		return RiskMedium
	default:
		return RiskLow
	}
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOrganizationNotFound is returned when the owning organization does not exist.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrAssessmentNotFound is returned when an assessment ID is unknown.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrQuestionNotFound indicates a submitted question ID is not in the catalog.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrRecommendationNotFound is returned on status updates for unknown recommendations.
	ErrRecommendationNotFound = errors.New("recommendation not found")
	// ErrAssessmentCompleted rejects answer submissions to a completed assessment.
	ErrAssessmentCompleted = errors.New("assessment already completed")
	// ErrAssessmentNotCompleted is returned when a summary is requested before completion.
	ErrAssessmentNotCompleted = errors.New("assessment not completed")
	// ErrCatalogEmpty indicates the question catalog could not be loaded.
	ErrCatalogEmpty = errors.New("question catalog is empty")
	// ErrInvalidAnswer marks answer values that fail validation against their
	// question definition; wrap it so transports can map to a client error.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// UnansweredCriticalError reports which critical questions are still
// unanswered at completion time.
type UnansweredCriticalError struct {
	QuestionIDs []string
}

func (e *UnansweredCriticalError) Error() string {
	return fmt.Sprintf("unanswered critical questions: %s", strings.Join(e.QuestionIDs, ", "))
}

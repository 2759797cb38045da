package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ppif-diagnostic/internal/domain"
	"ppif-diagnostic/internal/recommend"
	"ppif-diagnostic/internal/scoring"
)

// Store abstracts persistence for assessments and their derived artifacts
// (in-memory, Postgres). Implementations must serialize ReplaceResults per
// assessment so two concurrent completions never leave divergent score sets.
type Store interface {
	CreateOrganization(ctx context.Context, org domain.Organization) error
	GetOrganization(ctx context.Context, id string) (domain.Organization, error)

	CreateAssessment(ctx context.Context, a domain.Assessment) error
	GetAssessment(ctx context.Context, id string) (domain.Assessment, error)
	ListAssessments(ctx context.Context, organizationID string, status domain.AssessmentStatus) ([]domain.Assessment, error)
	UpdateAssessment(ctx context.Context, a domain.Assessment) error

	UpsertAnswer(ctx context.Context, answer domain.Answer) error
	ListAnswers(ctx context.Context, assessmentID string) (map[string]domain.Answer, error)

	// ReplaceResults atomically marks the assessment completed and swaps in
	// the freshly computed scores, findings, and recommendations.
	ReplaceResults(ctx context.Context, assessment domain.Assessment, scores []domain.Score, findings []domain.Finding, recs []domain.Recommendation) error
	GetResults(ctx context.Context, assessmentID string) ([]domain.Score, []domain.Finding, []domain.Recommendation, error)
	UpdateRecommendationStatus(ctx context.Context, recommendationID string, status domain.RecommendationStatus) (domain.Recommendation, error)
}

// CatalogRepository loads the question catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) (domain.Catalog, error)
}

// SummaryCache holds rendered summaries keyed by assessment ID.
type SummaryCache interface {
	Get(ctx context.Context, assessmentID string) (domain.Summary, bool)
	Set(ctx context.Context, summary domain.Summary)
	Invalidate(ctx context.Context, assessmentID string)
}

// AssessmentService contains the diagnostic use cases.
type AssessmentService struct {
	store   Store
	catalog CatalogRepository
	cache   SummaryCache
	events  *Hub
	now     func() time.Time
	newID   func() string
}

// Option tweaks service construction; used by tests for determinism.
type Option func(*AssessmentService)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) Option {
	return func(s *AssessmentService) { s.now = now }
}

// WithIDGenerator overrides entity ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *AssessmentService) { s.newID = gen }
}

// WithSummaryCache attaches a summary cache.
func WithSummaryCache(cache SummaryCache) Option {
	return func(s *AssessmentService) { s.cache = cache }
}

func NewAssessmentService(store Store, catalog CatalogRepository, events *Hub, opts ...Option) *AssessmentService {
	s := &AssessmentService{
		store:   store,
		catalog: catalog,
		events:  events,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrganization registers a new organization.
func (s *AssessmentService) CreateOrganization(ctx context.Context, name, orgDomain string) (domain.Organization, error) {
	org := domain.Organization{
		ID:        s.newID(),
		Name:      name,
		Domain:    orgDomain,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateOrganization(ctx, org); err != nil {
		return domain.Organization{}, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

// Organization fetches one organization by ID.
func (s *AssessmentService) Organization(ctx context.Context, id string) (domain.Organization, error) {
	return s.store.GetOrganization(ctx, id)
}

// CreateAssessment starts a new draft assessment for an organization.
func (s *AssessmentService) CreateAssessment(ctx context.Context, organizationID, name, version string, tags []string) (domain.Assessment, error) {
	if _, err := s.store.GetOrganization(ctx, organizationID); err != nil {
		return domain.Assessment{}, err
	}
	if version == "" {
		version = "1.0"
	}
	now := s.now()
	assessment := domain.Assessment{
		ID:             s.newID(),
		OrganizationID: organizationID,
		Name:           name,
		Version:        version,
		Status:         domain.StatusDraft,
		Tags:           tags,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateAssessment(ctx, assessment); err != nil {
		return domain.Assessment{}, fmt.Errorf("create assessment: %w", err)
	}
	return assessment, nil
}

// Assessment fetches one assessment by ID.
func (s *AssessmentService) Assessment(ctx context.Context, id string) (domain.Assessment, error) {
	return s.store.GetAssessment(ctx, id)
}

// ListAssessments returns assessments filtered by organization and status;
// empty filter values match everything.
func (s *AssessmentService) ListAssessments(ctx context.Context, organizationID string, status domain.AssessmentStatus) ([]domain.Assessment, error) {
	return s.store.ListAssessments(ctx, organizationID, status)
}

// AssessmentPatch holds the user-editable assessment fields; nil fields are
// left untouched.
type AssessmentPatch struct {
	Name         *string
	Notes        *string
	Tags         *[]string
	CustomFields *map[string]string
}

// UpdateAssessment applies a partial update to the editable metadata.
func (s *AssessmentService) UpdateAssessment(ctx context.Context, id string, patch AssessmentPatch) (domain.Assessment, error) {
	assessment, err := s.store.GetAssessment(ctx, id)
	if err != nil {
		return domain.Assessment{}, err
	}
	if patch.Name != nil {
		assessment.Name = *patch.Name
	}
	if patch.Notes != nil {
		assessment.Notes = *patch.Notes
	}
	if patch.Tags != nil {
		assessment.Tags = *patch.Tags
	}
	if patch.CustomFields != nil {
		assessment.CustomFields = *patch.CustomFields
	}
	assessment.UpdatedAt = s.now()
	if err := s.store.UpdateAssessment(ctx, assessment); err != nil {
		return domain.Assessment{}, fmt.Errorf("update assessment: %w", err)
	}
	return assessment, nil
}

// Catalog returns the question catalog.
func (s *AssessmentService) Catalog(ctx context.Context) (domain.Catalog, error) {
	return s.catalog.GetCatalog(ctx)
}

// SubmitAnswer validates, scores, and upserts one answer. The first answer
// moves a draft assessment to in_progress. Completed assessments are frozen;
// clone them to iterate.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, assessmentID, questionID, value string) (domain.Answer, error) {
	assessment, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return domain.Answer{}, err
	}
	if assessment.Status == domain.StatusCompleted {
		return domain.Answer{}, domain.ErrAssessmentCompleted
	}

	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("load catalog: %w", err)
	}
	question, ok := catalog.Find(questionID)
	if !ok {
		return domain.Answer{}, domain.ErrQuestionNotFound
	}

	maturity, err := scoring.MaturityForValue(question, value)
	if err != nil {
		return domain.Answer{}, err
	}

	now := s.now()
	answer := domain.Answer{
		AssessmentID: assessmentID,
		QuestionID:   questionID,
		Value:        value,
		Maturity:     maturity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.UpsertAnswer(ctx, answer); err != nil {
		return domain.Answer{}, fmt.Errorf("upsert answer: %w", err)
	}

	if assessment.Status == domain.StatusDraft {
		assessment.Status = domain.StatusInProgress
		assessment.UpdatedAt = now
		if err := s.store.UpdateAssessment(ctx, assessment); err != nil {
			return domain.Answer{}, fmt.Errorf("transition to in_progress: %w", err)
		}
	}
	return answer, nil
}

// Answers returns all stored answers for an assessment.
func (s *AssessmentService) Answers(ctx context.Context, assessmentID string) (map[string]domain.Answer, error) {
	if _, err := s.store.GetAssessment(ctx, assessmentID); err != nil {
		return nil, err
	}
	return s.store.ListAnswers(ctx, assessmentID)
}

// Complete runs the scoring pipeline and persists the derived results.
// Unless overrideCritical is set, unanswered critical questions abort the
// call with an UnansweredCriticalError listing their IDs. Calling Complete
// on an already-completed assessment recomputes everything from the stored
// answers; prior scores, findings, and recommendations are replaced.
func (s *AssessmentService) Complete(ctx context.Context, assessmentID string, overrideCritical bool) (domain.Summary, error) {
	assessment, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return domain.Summary{}, err
	}
	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load catalog: %w", err)
	}
	answers, err := s.store.ListAnswers(ctx, assessmentID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load answers: %w", err)
	}

	if !overrideCritical {
		if missing := scoring.UnansweredCritical(catalog, answers); len(missing) > 0 {
			return domain.Summary{}, &domain.UnansweredCriticalError{QuestionIDs: missing}
		}
	}

	scores := scoring.AllScores(assessmentID, catalog, answers)
	findings := scoring.Findings(assessmentID, catalog, scores, answers)
	recs := recommend.Generate(assessmentID, scores)
	for i := range findings {
		findings[i].ID = s.newID()
	}
	for i := range recs {
		recs[i].ID = s.newID()
	}

	completedAt := s.now()
	assessment.Status = domain.StatusCompleted
	assessment.CompletedAt = &completedAt
	assessment.UpdatedAt = completedAt

	if err := s.store.ReplaceResults(ctx, assessment, scores, findings, recs); err != nil {
		return domain.Summary{}, fmt.Errorf("persist results: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, assessmentID)
	}

	summary := buildSummary(assessment, scores, findings, recs)
	if s.events != nil {
		s.events.Publish(CompletionEvent{
			AssessmentID:    assessmentID,
			OrganizationID:  assessment.OrganizationID,
			Name:            assessment.Name,
			OverallMaturity: summary.OverallMaturity,
			RiskLevel:       summary.RiskLevel,
			Recommendations: len(recs),
			CompletedAt:     completedAt,
		})
	}
	return summary, nil
}

// Summary serves the read-only completion view. Requesting a summary for an
// assessment that was never completed is an error, not an all-zero report.
func (s *AssessmentService) Summary(ctx context.Context, assessmentID string) (domain.Summary, error) {
	if s.cache != nil {
		if summary, ok := s.cache.Get(ctx, assessmentID); ok {
			return summary, nil
		}
	}

	assessment, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return domain.Summary{}, err
	}
	if assessment.Status != domain.StatusCompleted {
		return domain.Summary{}, domain.ErrAssessmentNotCompleted
	}
	scores, findings, recs, err := s.store.GetResults(ctx, assessmentID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load results: %w", err)
	}

	summary := buildSummary(assessment, scores, findings, recs)
	if s.cache != nil {
		s.cache.Set(ctx, summary)
	}
	return summary, nil
}

// Clone copies an assessment with its answers into a fresh one, without the
// derived results. The copy starts in_progress when answers exist.
func (s *AssessmentService) Clone(ctx context.Context, assessmentID, name string) (domain.Assessment, error) {
	source, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return domain.Assessment{}, err
	}
	answers, err := s.store.ListAnswers(ctx, assessmentID)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("load answers: %w", err)
	}

	if name == "" {
		name = source.Name + " (Copy)"
	}
	now := s.now()
	clone := domain.Assessment{
		ID:             s.newID(),
		OrganizationID: source.OrganizationID,
		Name:           name,
		Version:        source.Version,
		Status:         domain.StatusDraft,
		Tags:           append([]string(nil), source.Tags...),
		Notes:          source.Notes,
		CustomFields:   copyFields(source.CustomFields),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if len(answers) > 0 {
		clone.Status = domain.StatusInProgress
	}
	if err := s.store.CreateAssessment(ctx, clone); err != nil {
		return domain.Assessment{}, fmt.Errorf("create clone: %w", err)
	}
	for _, answer := range answers {
		answer.AssessmentID = clone.ID
		answer.CreatedAt = now
		answer.UpdatedAt = now
		if err := s.store.UpsertAnswer(ctx, answer); err != nil {
			return domain.Assessment{}, fmt.Errorf("copy answer %s: %w", answer.QuestionID, err)
		}
	}
	return clone, nil
}

// UpdateRecommendationStatus lets users track execution of a recommendation.
func (s *AssessmentService) UpdateRecommendationStatus(ctx context.Context, recommendationID string, status domain.RecommendationStatus) (domain.Recommendation, error) {
	if !status.IsValid() {
		return domain.Recommendation{}, fmt.Errorf("invalid recommendation status %q", status)
	}
	rec, err := s.store.UpdateRecommendationStatus(ctx, recommendationID, status)
	if err != nil {
		return domain.Recommendation{}, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, rec.AssessmentID)
	}
	return rec, nil
}

func buildSummary(assessment domain.Assessment, scores []domain.Score, findings []domain.Finding, recs []domain.Recommendation) domain.Summary {
	summary := domain.Summary{
		Assessment:      assessment,
		Scores:          scores,
		Findings:        findings,
		Recommendations: recs,
	}
	if overall, ok := scoring.Overall(scores); ok {
		summary.OverallMaturity = &overall
		summary.RiskLevel = domain.RiskLevelFor(overall)
	}
	return summary
}

func copyFields(fields map[string]string) map[string]string {
	if fields == nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// IsNotFound reports whether err is one of the store's not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrAssessmentNotFound) ||
		errors.Is(err, domain.ErrOrganizationNotFound) ||
		errors.Is(err, domain.ErrQuestionNotFound) ||
		errors.Is(err, domain.ErrRecommendationNotFound)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"ppif-diagnostic/internal/domain"
	"ppif-diagnostic/internal/infra/memory"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{Questions: []domain.Question{
		{
			ID:        "perf-cache",
			Dimension: domain.DimensionPerformance,
			Type:      domain.QuestionSingleSelect,
			Text:      "Do you cache hot reads?",
			Options:   []string{"None", "Full"},
			Weight:    1.0,
			Order:     1,
			Critical:  true,
			MaturityMapping: map[string]float64{
				"None": 0,
				"Full": 5,
			},
		},
		{
			ID:        "perf-budget",
			Dimension: domain.DimensionPerformance,
			Type:      domain.QuestionSingleSelect,
			Text:      "Do you track latency budgets?",
			Options:   []string{"Low", "High"},
			Weight:    1.0,
			Order:     2,
			MaturityMapping: map[string]float64{
				"Low":  1,
				"High": 4,
			},
		},
		{
			ID:        "prod-runbooks",
			Dimension: domain.DimensionProductionReadiness,
			Type:      domain.QuestionSingleSelect,
			Text:      "Do services ship with runbooks?",
			Options:   []string{"No", "Yes"},
			Weight:    2.0,
			Order:     1,
			Critical:  true,
			MaturityMapping: map[string]float64{
				"No":  0,
				"Yes": 5,
			},
		},
		{
			ID:        "resil-notes",
			Dimension: domain.DimensionFailureResilience,
			Type:      domain.QuestionFreeText,
			Text:      "Describe your last major incident.",
			Weight:    1.0,
			Order:     1,
		},
	}}
}

type staticCatalog struct {
	catalog domain.Catalog
}

func (c staticCatalog) GetCatalog(_ context.Context) (domain.Catalog, error) {
	return c.catalog, nil
}

type spyCache struct {
	entries     map[string]domain.Summary
	hits        int
	invalidated []string
}

func newSpyCache() *spyCache {
	return &spyCache{entries: make(map[string]domain.Summary)}
}

func (c *spyCache) Get(_ context.Context, id string) (domain.Summary, bool) {
	s, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return s, ok
}

func (c *spyCache) Set(_ context.Context, s domain.Summary) {
	c.entries[s.Assessment.ID] = s
}

func (c *spyCache) Invalidate(_ context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

type fixture struct {
	service *AssessmentService
	store   *memory.Store
	cache   *spyCache
	hub     *Hub
	now     *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	seq := 0
	store := memory.NewStore()
	cache := newSpyCache()
	hub := NewHub()
	svc := NewAssessmentService(store, staticCatalog{testCatalog()}, hub,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		WithSummaryCache(cache),
	)
	return &fixture{service: svc, store: store, cache: cache, hub: hub, now: &now}
}

func (f *fixture) started(t *testing.T) domain.Assessment {
	t.Helper()
	ctx := context.Background()
	org, err := f.service.CreateOrganization(ctx, "Acme", "acme.example")
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	assessment, err := f.service.CreateAssessment(ctx, org.ID, "Q1 Review", "", nil)
	if err != nil {
		t.Fatalf("CreateAssessment: %v", err)
	}
	return assessment
}

func (f *fixture) answer(t *testing.T, assessmentID, questionID, value string) {
	t.Helper()
	if _, err := f.service.SubmitAnswer(context.Background(), assessmentID, questionID, value); err != nil {
		t.Fatalf("SubmitAnswer(%s, %q): %v", questionID, value, err)
	}
}

func TestCreateAssessmentDefaults(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)

	if assessment.Status != domain.StatusDraft {
		t.Fatalf("status = %s, want draft", assessment.Status)
	}
	if assessment.Version != "1.0" {
		t.Fatalf("version = %q, want default 1.0", assessment.Version)
	}
}

func TestCreateAssessmentUnknownOrganization(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.CreateAssessment(context.Background(), "missing", "x", "", nil)
	if !errors.Is(err, domain.ErrOrganizationNotFound) {
		t.Fatalf("err = %v, want ErrOrganizationNotFound", err)
	}
}

func TestSubmitAnswerTransitionsToInProgress(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	answer, err := f.service.SubmitAnswer(ctx, assessment.ID, "perf-cache", "Full")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if answer.Maturity == nil || *answer.Maturity != 5.0 {
		t.Fatalf("maturity = %v, want 5.0", answer.Maturity)
	}

	got, err := f.service.Assessment(ctx, assessment.ID)
	if err != nil {
		t.Fatalf("Assessment: %v", err)
	}
	if got.Status != domain.StatusInProgress {
		t.Fatalf("status = %s, want in_progress after first answer", got.Status)
	}
}

func TestSubmitAnswerRejectsInvalidValues(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	if _, err := f.service.SubmitAnswer(ctx, assessment.ID, "nope", "Full"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("unknown question err = %v, want ErrQuestionNotFound", err)
	}
	if _, err := f.service.SubmitAnswer(ctx, assessment.ID, "perf-cache", "Sometimes"); err == nil {
		t.Fatal("expected error for value outside the option list")
	}
}

func TestSubmitAnswerLastWriteWins(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-budget", "Low")
	first, err := f.service.Answers(ctx, assessment.ID)
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}

	*f.now = f.now.Add(time.Hour)
	f.answer(t, assessment.ID, "perf-budget", "High")

	answers, err := f.service.Answers(ctx, assessment.ID)
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("answer count = %d, want 1 after resubmission", len(answers))
	}
	got := answers["perf-budget"]
	if got.Value != "High" || *got.Maturity != 4.0 {
		t.Fatalf("answer = %+v, want latest value High with maturity 4.0", got)
	}
	if !got.CreatedAt.Equal(first["perf-budget"].CreatedAt) {
		t.Fatal("CreatedAt changed on upsert")
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatal("UpdatedAt not advanced on upsert")
	}
}

func TestCompleteRejectsUnansweredCriticals(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-budget", "High")

	_, err := f.service.Complete(ctx, assessment.ID, false)
	var missing *domain.UnansweredCriticalError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want UnansweredCriticalError", err)
	}
	if len(missing.QuestionIDs) != 2 {
		t.Fatalf("missing = %v, want both critical question IDs", missing.QuestionIDs)
	}

	got, _ := f.service.Assessment(ctx, assessment.ID)
	if got.Status != domain.StatusInProgress {
		t.Fatalf("status = %s, rejection must not advance the lifecycle", got.Status)
	}
}

func TestCompleteWithOverrideCapsAndScoresZero(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-budget", "High")

	summary, err := f.service.Complete(ctx, assessment.ID, true)
	if err != nil {
		t.Fatalf("Complete with override: %v", err)
	}

	byDim := make(map[domain.Dimension]domain.Score)
	for _, s := range summary.Scores {
		byDim[s.Dimension] = s
	}
	// perf: (0*1 + 4*1)/2 capped at the critical ceiling of 2.0.
	if got := byDim[domain.DimensionPerformance].MaturityScore; got != 2.0 {
		t.Fatalf("performance maturity = %v, want capped 2.0", got)
	}
	// prod: only the unanswered critical, counted at zero points.
	if got := byDim[domain.DimensionProductionReadiness].MaturityScore; got != 0.0 {
		t.Fatalf("production readiness maturity = %v, want 0.0", got)
	}
	if summary.OverallMaturity == nil || *summary.OverallMaturity != 1.0 {
		t.Fatalf("overall = %v, want 1.0", summary.OverallMaturity)
	}
	if summary.RiskLevel != domain.RiskCritical {
		t.Fatalf("risk = %s, want critical", summary.RiskLevel)
	}
}

func TestCompleteHappyPath(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	events, cancel := f.hub.Subscribe()
	defer cancel()

	f.answer(t, assessment.ID, "perf-cache", "Full")
	f.answer(t, assessment.ID, "perf-budget", "High")
	f.answer(t, assessment.ID, "prod-runbooks", "Yes")

	summary, err := f.service.Complete(ctx, assessment.ID, false)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if summary.Assessment.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", summary.Assessment.Status)
	}
	if summary.Assessment.CompletedAt == nil {
		t.Fatal("CompletedAt not set")
	}
	if len(summary.Scores) != 2 {
		t.Fatalf("scores = %d, want 2 (free-text dimension stays undefined)", len(summary.Scores))
	}
	if summary.OverallMaturity == nil || *summary.OverallMaturity != 4.75 {
		t.Fatalf("overall = %v, want 4.75", summary.OverallMaturity)
	}
	if summary.RiskLevel != domain.RiskLow {
		t.Fatalf("risk = %s, want low", summary.RiskLevel)
	}
	for _, rec := range summary.Recommendations {
		if rec.ID == "" {
			t.Fatal("recommendation without ID")
		}
		if rec.Status != domain.RecommendationPending {
			t.Fatalf("recommendation status = %s, want pending", rec.Status)
		}
	}

	select {
	case evt := <-events:
		if evt.AssessmentID != assessment.ID {
			t.Fatalf("event assessment = %s, want %s", evt.AssessmentID, assessment.ID)
		}
		if evt.RiskLevel != domain.RiskLow {
			t.Fatalf("event risk = %s, want low", evt.RiskLevel)
		}
	default:
		t.Fatal("no completion event published")
	}
}

func TestCompleteIsIdempotentRecompute(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-cache", "Full")
	f.answer(t, assessment.ID, "perf-budget", "High")
	f.answer(t, assessment.ID, "prod-runbooks", "Yes")

	first, err := f.service.Complete(ctx, assessment.ID, false)
	if err != nil {
		t.Fatalf("first Complete: %v", err)
	}
	second, err := f.service.Complete(ctx, assessment.ID, false)
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}

	if len(second.Scores) != len(first.Scores) {
		t.Fatalf("recompute changed score count: %d vs %d", len(second.Scores), len(first.Scores))
	}
	if *second.OverallMaturity != *first.OverallMaturity {
		t.Fatalf("recompute changed overall: %v vs %v", *second.OverallMaturity, *first.OverallMaturity)
	}
	scores, findings, recs, err := f.store.GetResults(ctx, assessment.ID)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(scores) != len(first.Scores) || len(findings) != len(first.Findings) || len(recs) != len(first.Recommendations) {
		t.Fatal("recompute duplicated derived rows instead of replacing them")
	}
}

func TestAnswersFrozenAfterCompletion(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-cache", "Full")
	f.answer(t, assessment.ID, "perf-budget", "High")
	f.answer(t, assessment.ID, "prod-runbooks", "Yes")
	if _, err := f.service.Complete(ctx, assessment.ID, false); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	_, err := f.service.SubmitAnswer(ctx, assessment.ID, "perf-budget", "Low")
	if !errors.Is(err, domain.ErrAssessmentCompleted) {
		t.Fatalf("err = %v, want ErrAssessmentCompleted", err)
	}
}

func TestSummaryRequiresCompletion(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)

	_, err := f.service.Summary(context.Background(), assessment.ID)
	if !errors.Is(err, domain.ErrAssessmentNotCompleted) {
		t.Fatalf("err = %v, want ErrAssessmentNotCompleted", err)
	}
}

func TestSummaryCaching(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-cache", "Full")
	f.answer(t, assessment.ID, "perf-budget", "High")
	f.answer(t, assessment.ID, "prod-runbooks", "Yes")
	if _, err := f.service.Complete(ctx, assessment.ID, false); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if _, err := f.service.Summary(ctx, assessment.ID); err != nil {
		t.Fatalf("first Summary: %v", err)
	}
	if _, err := f.service.Summary(ctx, assessment.ID); err != nil {
		t.Fatalf("second Summary: %v", err)
	}
	if f.cache.hits != 1 {
		t.Fatalf("cache hits = %d, want 1 (second read served from cache)", f.cache.hits)
	}

	// Recompleting invalidates the cached view.
	if _, err := f.service.Complete(ctx, assessment.ID, false); err != nil {
		t.Fatalf("recomplete: %v", err)
	}
	if len(f.cache.invalidated) == 0 {
		t.Fatal("completion did not invalidate the summary cache")
	}
}

func TestCloneCopiesAnswersNotResults(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-cache", "Full")
	f.answer(t, assessment.ID, "perf-budget", "High")
	f.answer(t, assessment.ID, "prod-runbooks", "Yes")
	if _, err := f.service.Complete(ctx, assessment.ID, false); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	clone, err := f.service.Clone(ctx, assessment.ID, "")
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if clone.ID == assessment.ID {
		t.Fatal("clone reused the source ID")
	}
	if !strings.HasSuffix(clone.Name, "(Copy)") {
		t.Fatalf("clone name = %q, want default Copy suffix", clone.Name)
	}
	if clone.Status != domain.StatusInProgress {
		t.Fatalf("clone status = %s, want in_progress (answers copied)", clone.Status)
	}

	answers, err := f.service.Answers(ctx, clone.ID)
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("clone answers = %d, want 3", len(answers))
	}
	scores, _, _, err := f.store.GetResults(ctx, clone.ID)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(scores) != 0 {
		t.Fatal("clone must not inherit derived results")
	}

	// The clone is editable even though the source is frozen.
	f.answer(t, clone.ID, "perf-budget", "Low")
}

func TestUpdateRecommendationStatus(t *testing.T) {
	f := newFixture(t)
	assessment := f.started(t)
	ctx := context.Background()

	f.answer(t, assessment.ID, "perf-cache", "None")
	f.answer(t, assessment.ID, "perf-budget", "Low")
	f.answer(t, assessment.ID, "prod-runbooks", "No")
	summary, err := f.service.Complete(ctx, assessment.ID, false)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(summary.Recommendations) == 0 {
		t.Fatal("low-maturity assessment produced no recommendations")
	}

	target := summary.Recommendations[0]
	updated, err := f.service.UpdateRecommendationStatus(ctx, target.ID, domain.RecommendationInProgress)
	if err != nil {
		t.Fatalf("UpdateRecommendationStatus: %v", err)
	}
	if updated.Status != domain.RecommendationInProgress {
		t.Fatalf("status = %s, want in_progress", updated.Status)
	}

	if _, err := f.service.UpdateRecommendationStatus(ctx, target.ID, "abandoned"); err == nil {
		t.Fatal("expected error for invalid status")
	}
	if _, err := f.service.UpdateRecommendationStatus(ctx, "missing", domain.RecommendationSkipped); !errors.Is(err, domain.ErrRecommendationNotFound) {
		t.Fatalf("err = %v, want ErrRecommendationNotFound", err)
	}
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ppif-diagnostic/internal/domain"
)

func seedAssessment(t *testing.T, s *Store, id string) domain.Assessment {
	t.Helper()
	a := domain.Assessment{
		ID:             id,
		OrganizationID: "org-1",
		Name:           "baseline",
		Version:        "1.0",
		Status:         domain.StatusInProgress,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("CreateAssessment: %v", err)
	}
	return a
}

func TestStoreNotFoundSentinels(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.GetOrganization(ctx, "x"); !errors.Is(err, domain.ErrOrganizationNotFound) {
		t.Fatalf("organization err = %v", err)
	}
	if _, err := s.GetAssessment(ctx, "x"); !errors.Is(err, domain.ErrAssessmentNotFound) {
		t.Fatalf("assessment err = %v", err)
	}
	if err := s.UpdateAssessment(ctx, domain.Assessment{ID: "x"}); !errors.Is(err, domain.ErrAssessmentNotFound) {
		t.Fatalf("update err = %v", err)
	}
	if _, err := s.UpdateRecommendationStatus(ctx, "x", domain.RecommendationSkipped); !errors.Is(err, domain.ErrRecommendationNotFound) {
		t.Fatalf("recommendation err = %v", err)
	}
}

func TestStoreListAssessmentsFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a1 := seedAssessment(t, s, "a-1")
	a2 := domain.Assessment{ID: "a-2", OrganizationID: "org-2", Status: domain.StatusCompleted}
	if err := s.CreateAssessment(ctx, a2); err != nil {
		t.Fatalf("CreateAssessment: %v", err)
	}

	all, err := s.ListAssessments(ctx, "", "")
	if err != nil {
		t.Fatalf("ListAssessments: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered count = %d, want 2", len(all))
	}

	byOrg, _ := s.ListAssessments(ctx, a1.OrganizationID, "")
	if len(byOrg) != 1 || byOrg[0].ID != a1.ID {
		t.Fatalf("org filter returned %+v", byOrg)
	}

	byStatus, _ := s.ListAssessments(ctx, "", domain.StatusCompleted)
	if len(byStatus) != 1 || byStatus[0].ID != a2.ID {
		t.Fatalf("status filter returned %+v", byStatus)
	}
}

func TestStoreUpsertAnswerPreservesCreatedAt(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedAssessment(t, s, "a-1")

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := domain.Answer{
		AssessmentID: "a-1",
		QuestionID:   "q-1",
		Value:        "No",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := s.UpsertAnswer(ctx, first); err != nil {
		t.Fatalf("UpsertAnswer: %v", err)
	}

	second := first
	second.Value = "Yes"
	second.CreatedAt = created.Add(time.Hour)
	second.UpdatedAt = created.Add(time.Hour)
	if err := s.UpsertAnswer(ctx, second); err != nil {
		t.Fatalf("UpsertAnswer: %v", err)
	}

	answers, err := s.ListAnswers(ctx, "a-1")
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	got := answers["q-1"]
	if got.Value != "Yes" {
		t.Fatalf("value = %q, want Yes", got.Value)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want original %v", got.CreatedAt, created)
	}
}

func TestStoreReplaceResultsSwapsRows(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedAssessment(t, s, "a-1")

	a.Status = domain.StatusCompleted
	firstScores := []domain.Score{
		{AssessmentID: a.ID, Dimension: domain.DimensionPerformance, MaturityScore: 1.5},
		{AssessmentID: a.ID, Dimension: domain.DimensionFailureResilience, MaturityScore: 2.0},
	}
	firstRecs := []domain.Recommendation{{ID: "r-1", AssessmentID: a.ID, Status: domain.RecommendationPending}}
	if err := s.ReplaceResults(ctx, a, firstScores, nil, firstRecs); err != nil {
		t.Fatalf("ReplaceResults: %v", err)
	}

	secondScores := []domain.Score{
		{AssessmentID: a.ID, Dimension: domain.DimensionPerformance, MaturityScore: 3.0},
	}
	secondRecs := []domain.Recommendation{
		{ID: "r-2", AssessmentID: a.ID, Status: domain.RecommendationPending},
		{ID: "r-3", AssessmentID: a.ID, Status: domain.RecommendationPending},
	}
	if err := s.ReplaceResults(ctx, a, secondScores, nil, secondRecs); err != nil {
		t.Fatalf("ReplaceResults: %v", err)
	}

	scores, findings, recs, err := s.GetResults(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(scores) != 1 || scores[0].MaturityScore != 3.0 {
		t.Fatalf("scores = %+v, old rows must be replaced", scores)
	}
	if len(findings) != 0 {
		t.Fatalf("findings = %+v, want none", findings)
	}
	if len(recs) != 2 {
		t.Fatalf("recommendation count = %d, want 2", len(recs))
	}
	if _, err := s.UpdateRecommendationStatus(ctx, "r-1", domain.RecommendationCompleted); !errors.Is(err, domain.ErrRecommendationNotFound) {
		t.Fatalf("stale recommendation still reachable: %v", err)
	}

	got, _ := s.GetAssessment(ctx, a.ID)
	if got.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
}

func TestStoreListAnswersReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedAssessment(t, s, "a-1")

	if err := s.UpsertAnswer(ctx, domain.Answer{AssessmentID: "a-1", QuestionID: "q-1", Value: "Yes"}); err != nil {
		t.Fatalf("UpsertAnswer: %v", err)
	}
	answers, _ := s.ListAnswers(ctx, "a-1")
	delete(answers, "q-1")

	again, _ := s.ListAnswers(ctx, "a-1")
	if len(again) != 1 {
		t.Fatal("caller mutation leaked into the store")
	}
}

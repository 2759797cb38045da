package memory

import (
	"context"
	"sync"

	"ppif-diagnostic/internal/domain"
)

// Store is an in-memory implementation of app.Store. It backs unit tests and
// lets the server run without Postgres configured.
type Store struct {
	mu              sync.RWMutex
	organizations   map[string]domain.Organization
	assessments     map[string]domain.Assessment
	answers         map[string]map[string]domain.Answer // assessmentID -> questionID -> answer
	scores          map[string][]domain.Score
	findings        map[string][]domain.Finding
	recommendations map[string][]domain.Recommendation
}

func NewStore() *Store {
	return &Store{
		organizations:   make(map[string]domain.Organization),
		assessments:     make(map[string]domain.Assessment),
		answers:         make(map[string]map[string]domain.Answer),
		scores:          make(map[string][]domain.Score),
		findings:        make(map[string][]domain.Finding),
		recommendations: make(map[string][]domain.Recommendation),
	}
}

func (s *Store) CreateOrganization(_ context.Context, org domain.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.organizations[org.ID] = org
	return nil
}

func (s *Store) GetOrganization(_ context.Context, id string) (domain.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.organizations[id]
	if !ok {
		return domain.Organization{}, domain.ErrOrganizationNotFound
	}
	return org, nil
}

func (s *Store) CreateAssessment(_ context.Context, a domain.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[a.ID] = a
	return nil
}

func (s *Store) GetAssessment(_ context.Context, id string) (domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assessments[id]
	if !ok {
		return domain.Assessment{}, domain.ErrAssessmentNotFound
	}
	return a, nil
}

func (s *Store) ListAssessments(_ context.Context, organizationID string, status domain.AssessmentStatus) ([]domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Assessment
	for _, a := range s.assessments {
		if organizationID != "" && a.OrganizationID != organizationID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) UpdateAssessment(_ context.Context, a domain.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assessments[a.ID]; !ok {
		return domain.ErrAssessmentNotFound
	}
	s.assessments[a.ID] = a
	return nil
}

func (s *Store) UpsertAnswer(_ context.Context, answer domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byQuestion, ok := s.answers[answer.AssessmentID]
	if !ok {
		byQuestion = make(map[string]domain.Answer)
		s.answers[answer.AssessmentID] = byQuestion
	}
	if existing, ok := byQuestion[answer.QuestionID]; ok {
		answer.CreatedAt = existing.CreatedAt
	}
	byQuestion[answer.QuestionID] = answer
	return nil
}

func (s *Store) ListAnswers(_ context.Context, assessmentID string) (map[string]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Answer, len(s.answers[assessmentID]))
	for questionID, answer := range s.answers[assessmentID] {
		out[questionID] = answer
	}
	return out, nil
}

func (s *Store) ReplaceResults(_ context.Context, assessment domain.Assessment, scores []domain.Score, findings []domain.Finding, recs []domain.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assessments[assessment.ID]; !ok {
		return domain.ErrAssessmentNotFound
	}
	s.assessments[assessment.ID] = assessment
	s.scores[assessment.ID] = append([]domain.Score(nil), scores...)
	s.findings[assessment.ID] = append([]domain.Finding(nil), findings...)
	s.recommendations[assessment.ID] = append([]domain.Recommendation(nil), recs...)
	return nil
}

func (s *Store) GetResults(_ context.Context, assessmentID string) ([]domain.Score, []domain.Finding, []domain.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Score(nil), s.scores[assessmentID]...),
		append([]domain.Finding(nil), s.findings[assessmentID]...),
		append([]domain.Recommendation(nil), s.recommendations[assessmentID]...),
		nil
}

func (s *Store) UpdateRecommendationStatus(_ context.Context, recommendationID string, status domain.RecommendationStatus) (domain.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for assessmentID, recs := range s.recommendations {
		for i := range recs {
			if recs[i].ID == recommendationID {
				recs[i].Status = status
				s.recommendations[assessmentID] = recs
				return recs[i], nil
			}
		}
	}
	return domain.Recommendation{}, domain.ErrRecommendationNotFound
}

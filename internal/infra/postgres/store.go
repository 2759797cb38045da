package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ppif-diagnostic/internal/domain"
)

// Store is the Postgres implementation of app.Store. ReplaceResults runs in
// a transaction holding a row lock on the assessment, so concurrent
// completions serialize instead of interleaving their derived rows.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateOrganization(ctx context.Context, org domain.Organization) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organizations (id, name, domain, api_key, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		org.ID, org.Name, org.Domain, org.APIKey, org.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	var org domain.Organization
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, domain, api_key, created_at
		FROM organizations WHERE id=$1`, id).
		Scan(&org.ID, &org.Name, &org.Domain, &org.APIKey, &org.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Organization{}, domain.ErrOrganizationNotFound
	}
	if err != nil {
		return domain.Organization{}, fmt.Errorf("select organization: %w", err)
	}
	return org, nil
}

func (s *Store) CreateAssessment(ctx context.Context, a domain.Assessment) error {
	tags, custom, err := marshalAssessmentJSON(a)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO assessments (id, organization_id, name, version, status,
		                         tags, notes, custom_fields,
		                         created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.OrganizationID, a.Name, a.Version, a.Status,
		tags, a.Notes, custom,
		a.CreatedAt, a.UpdatedAt, a.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (s *Store) GetAssessment(ctx context.Context, id string) (domain.Assessment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, organization_id, name, version, status,
		       tags, notes, custom_fields,
		       created_at, updated_at, completed_at
		FROM assessments WHERE id=$1`, id)
	a, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Assessment{}, domain.ErrAssessmentNotFound
	}
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("select assessment: %w", err)
	}
	return a, nil
}

func (s *Store) ListAssessments(ctx context.Context, organizationID string, status domain.AssessmentStatus) ([]domain.Assessment, error) {
	query := `
		SELECT id, organization_id, name, version, status,
		       tags, notes, custom_fields,
		       created_at, updated_at, completed_at
		FROM assessments WHERE 1=1`
	args := []interface{}{}
	if organizationID != "" {
		args = append(args, organizationID)
		query += fmt.Sprintf(" AND organization_id=$%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAssessment(ctx context.Context, a domain.Assessment) error {
	tags, custom, err := marshalAssessmentJSON(a)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE assessments
		SET name=$2, version=$3, status=$4, tags=$5, notes=$6,
		    custom_fields=$7, updated_at=$8, completed_at=$9
		WHERE id=$1`,
		a.ID, a.Name, a.Version, a.Status, tags, a.Notes,
		custom, a.UpdatedAt, a.CompletedAt)
	if err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssessmentNotFound
	}
	return nil
}

func (s *Store) UpsertAnswer(ctx context.Context, answer domain.Answer) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO answers (assessment_id, question_id, answer_value,
		                     maturity_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (assessment_id, question_id) DO UPDATE SET
			answer_value   = EXCLUDED.answer_value,
			maturity_score = EXCLUDED.maturity_score,
			updated_at     = EXCLUDED.updated_at`,
		answer.AssessmentID, answer.QuestionID, answer.Value,
		answer.Maturity, answer.CreatedAt, answer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

func (s *Store) ListAnswers(ctx context.Context, assessmentID string) (map[string]domain.Answer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT assessment_id, question_id, answer_value,
		       maturity_score, created_at, updated_at
		FROM answers WHERE assessment_id=$1`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Answer)
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.AssessmentID, &a.QuestionID, &a.Value,
			&a.Maturity, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out[a.QuestionID] = a
	}
	return out, rows.Err()
}

func (s *Store) ReplaceResults(ctx context.Context, assessment domain.Assessment, scores []domain.Score, findings []domain.Finding, recs []domain.Recommendation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing string
	err = tx.QueryRow(ctx, `SELECT id FROM assessments WHERE id=$1 FOR UPDATE`, assessment.ID).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAssessmentNotFound
	}
	if err != nil {
		return fmt.Errorf("lock assessment: %w", err)
	}

	tags, custom, err := marshalAssessmentJSON(assessment)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE assessments
		SET name=$2, version=$3, status=$4, tags=$5, notes=$6,
		    custom_fields=$7, updated_at=$8, completed_at=$9
		WHERE id=$1`,
		assessment.ID, assessment.Name, assessment.Version, assessment.Status,
		tags, assessment.Notes, custom, assessment.UpdatedAt, assessment.CompletedAt)
	if err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}

	for _, table := range []string{"scores", "findings", "recommendations"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE assessment_id=$1`, assessment.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, score := range scores {
		_, err := tx.Exec(ctx, `
			INSERT INTO scores (assessment_id, dimension, maturity_score,
			                    weighted_score, max_possible_score, percentage)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			score.AssessmentID, score.Dimension, score.MaturityScore,
			score.WeightedScore, score.MaxPossibleScore, score.Percentage)
		if err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
	}
	for _, f := range findings {
		_, err := tx.Exec(ctx, `
			INSERT INTO findings (id, assessment_id, dimension, severity,
			                      title, description, question_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			f.ID, f.AssessmentID, f.Dimension, f.Severity,
			f.Title, f.Description, f.QuestionID)
		if err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
	}
	for _, r := range recs {
		_, err := tx.Exec(ctx, `
			INSERT INTO recommendations (id, assessment_id, dimension, title,
			                             description, effort, impact, timeline,
			                             priority, kpi, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			r.ID, r.AssessmentID, r.Dimension, r.Title,
			r.Description, r.Effort, r.Impact, r.Timeline,
			r.Priority, r.KPI, r.Status)
		if err != nil {
			return fmt.Errorf("insert recommendation: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) GetResults(ctx context.Context, assessmentID string) ([]domain.Score, []domain.Finding, []domain.Recommendation, error) {
	scores, err := s.listScores(ctx, assessmentID)
	if err != nil {
		return nil, nil, nil, err
	}
	findings, err := s.listFindings(ctx, assessmentID)
	if err != nil {
		return nil, nil, nil, err
	}
	recs, err := s.listRecommendations(ctx, assessmentID)
	if err != nil {
		return nil, nil, nil, err
	}
	return scores, findings, recs, nil
}

func (s *Store) UpdateRecommendationStatus(ctx context.Context, recommendationID string, status domain.RecommendationStatus) (domain.Recommendation, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE recommendations SET status=$2 WHERE id=$1
		RETURNING id, assessment_id, dimension, title, description,
		          effort, impact, timeline, priority, kpi, status`,
		recommendationID, status)
	var r domain.Recommendation
	err := row.Scan(&r.ID, &r.AssessmentID, &r.Dimension, &r.Title, &r.Description,
		&r.Effort, &r.Impact, &r.Timeline, &r.Priority, &r.KPI, &r.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Recommendation{}, domain.ErrRecommendationNotFound
	}
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("update recommendation: %w", err)
	}
	return r, nil
}

func (s *Store) listScores(ctx context.Context, assessmentID string) ([]domain.Score, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT assessment_id, dimension, maturity_score,
		       weighted_score, max_possible_score, percentage
		FROM scores WHERE assessment_id=$1
		ORDER BY dimension`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var out []domain.Score
	for rows.Next() {
		var sc domain.Score
		if err := rows.Scan(&sc.AssessmentID, &sc.Dimension, &sc.MaturityScore,
			&sc.WeightedScore, &sc.MaxPossibleScore, &sc.Percentage); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Store) listFindings(ctx context.Context, assessmentID string) ([]domain.Finding, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, assessment_id, dimension, severity, title, description, question_id
		FROM findings WHERE assessment_id=$1`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list findings: %w", err)
	}
	defer rows.Close()

	var out []domain.Finding
	for rows.Next() {
		var f domain.Finding
		if err := rows.Scan(&f.ID, &f.AssessmentID, &f.Dimension, &f.Severity,
			&f.Title, &f.Description, &f.QuestionID); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) listRecommendations(ctx context.Context, assessmentID string) ([]domain.Recommendation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, assessment_id, dimension, title, description,
		       effort, impact, timeline, priority, kpi, status
		FROM recommendations WHERE assessment_id=$1
		ORDER BY priority DESC`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var out []domain.Recommendation
	for rows.Next() {
		var r domain.Recommendation
		if err := rows.Scan(&r.ID, &r.AssessmentID, &r.Dimension, &r.Title, &r.Description,
			&r.Effort, &r.Impact, &r.Timeline, &r.Priority, &r.KPI, &r.Status); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssessment(row rowScanner) (domain.Assessment, error) {
	var (
		a      domain.Assessment
		tags   []byte
		custom []byte
	)
	if err := row.Scan(&a.ID, &a.OrganizationID, &a.Name, &a.Version, &a.Status,
		&tags, &a.Notes, &custom,
		&a.CreatedAt, &a.UpdatedAt, &a.CompletedAt); err != nil {
		return domain.Assessment{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &a.Tags); err != nil {
			return domain.Assessment{}, fmt.Errorf("tags: %w", err)
		}
	}
	if len(custom) > 0 {
		if err := json.Unmarshal(custom, &a.CustomFields); err != nil {
			return domain.Assessment{}, fmt.Errorf("custom fields: %w", err)
		}
	}
	return a, nil
}

func marshalAssessmentJSON(a domain.Assessment) ([]byte, []byte, error) {
	var tags, custom []byte
	var err error
	if len(a.Tags) > 0 {
		tags, err = json.Marshal(a.Tags)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal tags: %w", err)
		}
	}
	if len(a.CustomFields) > 0 {
		custom, err = json.Marshal(a.CustomFields)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal custom fields: %w", err)
		}
	}
	return tags, custom, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"ppif-diagnostic/internal/domain"
)

// CatalogLoader reads the question catalog from Postgres. Options, maturity
// mappings, and numeric scales live in JSONB columns; the scalar fields are
// plain columns so they stay queryable.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, dimension, question_type, question_text,
		       options, weight, display_order, is_critical,
		       maturity_mapping, numeric_scale
		FROM questions
		ORDER BY dimension, display_order`)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var catalog domain.Catalog
	for rows.Next() {
		var (
			q       domain.Question
			options []byte
			mapping []byte
			numeric []byte
		)
		if err := rows.Scan(&q.ID, &q.Dimension, &q.Type, &q.Text,
			&options, &q.Weight, &q.Order, &q.Critical,
			&mapping, &numeric); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan question: %w", err)
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return domain.Catalog{}, fmt.Errorf("question %s: options: %w", q.ID, err)
			}
		}
		if len(mapping) > 0 {
			if err := json.Unmarshal(mapping, &q.MaturityMapping); err != nil {
				return domain.Catalog{}, fmt.Errorf("question %s: maturity mapping: %w", q.ID, err)
			}
		}
		if len(numeric) > 0 {
			var scale domain.NumericScale
			if err := json.Unmarshal(numeric, &scale); err != nil {
				return domain.Catalog{}, fmt.Errorf("question %s: numeric scale: %w", q.ID, err)
			}
			q.Numeric = &scale
		}
		catalog.Questions = append(catalog.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("iterate questions: %w", err)
	}
	if len(catalog.Questions) == 0 {
		return domain.Catalog{}, domain.ErrCatalogEmpty
	}
	return catalog, nil
}

// SeedCatalog upserts the given questions. Existing rows are overwritten so
// reseeding converges on the current catalog definition.
func (l *CatalogLoader) SeedCatalog(ctx context.Context, catalog domain.Catalog) error {
	for _, q := range catalog.Questions {
		options, err := marshalOrNil(q.Options)
		if err != nil {
			return fmt.Errorf("question %s: options: %w", q.ID, err)
		}
		mapping, err := marshalOrNil(q.MaturityMapping)
		if err != nil {
			return fmt.Errorf("question %s: maturity mapping: %w", q.ID, err)
		}
		var numeric []byte
		if q.Numeric != nil {
			numeric, err = json.Marshal(q.Numeric)
			if err != nil {
				return fmt.Errorf("question %s: numeric scale: %w", q.ID, err)
			}
		}
		_, err = l.pool.Exec(ctx, `
			INSERT INTO questions (id, dimension, question_type, question_text,
			                       options, weight, display_order, is_critical,
			                       maturity_mapping, numeric_scale)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				dimension        = EXCLUDED.dimension,
				question_type    = EXCLUDED.question_type,
				question_text    = EXCLUDED.question_text,
				options          = EXCLUDED.options,
				weight           = EXCLUDED.weight,
				display_order    = EXCLUDED.display_order,
				is_critical      = EXCLUDED.is_critical,
				maturity_mapping = EXCLUDED.maturity_mapping,
				numeric_scale    = EXCLUDED.numeric_scale`,
			q.ID, q.Dimension, q.Type, q.Text,
			options, q.Weight, q.Order, q.Critical,
			mapping, numeric)
		if err != nil {
			return fmt.Errorf("upsert question %s: %w", q.ID, err)
		}
	}
	return nil
}

func marshalOrNil(v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return nil, nil
		}
	case map[string]float64:
		if len(t) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

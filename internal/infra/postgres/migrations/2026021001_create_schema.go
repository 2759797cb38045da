package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_schema.sql
var createSchemaSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createSchemaSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				DROP TABLE IF EXISTS recommendations;
				DROP TABLE IF EXISTS findings;
				DROP TABLE IF EXISTS scores;
				DROP TABLE IF EXISTS answers;
				DROP TABLE IF EXISTS assessments;
				DROP TABLE IF EXISTS questions;
				DROP TABLE IF EXISTS organizations;
			`)
			return err
		},
	)
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"duk-quiz-service/internal/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// OpenBun opens a bun handle for migrations and seeding.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// SeedQuestionSet inserts or replaces a question set.
func SeedQuestionSet(ctx context.Context, db *bun.DB, set domain.QuestionSet) error {
	if set.ID == "" {
		return fmt.Errorf("%w: question set id is required", domain.ErrInvalidArgument)
	}
	for _, q := range set.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
	}
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO question_sets (id, data) VALUES (?, ?::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		set.ID, string(data))
	if err != nil {
		return fmt.Errorf("upsert question set: %w", err)
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"duk-quiz-service/internal/config"
	"duk-quiz-service/internal/domain"
	"duk-quiz-service/internal/infra/memory"
	"duk-quiz-service/internal/infra/postgres"
	infraredis "duk-quiz-service/internal/infra/redis"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads a question bank into Postgres. Without --file the built-in
// bank is seeded.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file, setID string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a question set into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file, setID)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file with a question set or a list of questions")
	cmd.Flags().StringVar(&setID, "set", "", "question set id (defaults to the file's id or quiz.question_set)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file, setID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg)
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	set := memory.DefaultQuestionSet()
	if file != "" {
		if set, err = readQuestionSet(file); err != nil {
			return err
		}
	}
	if setID == "" && set.ID == "" {
		setID = cfg.Quiz.QuestionSet
	}
	if setID != "" {
		set.ID = setID
	}

	db := postgres.OpenBun(cfg.Postgres.URL)
	defer db.Close()
	if err := postgres.SeedQuestionSet(ctx, db, set); err != nil {
		return err
	}

	if client := newRedisClient(cfg); client != nil {
		defer client.Close()
		cache := infraredis.NewQuestionRepository(client, nil, time.Minute)
		if err := cache.Invalidate(ctx, set.ID); err != nil {
			log.Warn().Err(err).Str("set", set.ID).Msg("failed to invalidate cached question set")
		}
	}
	log.Info().Str("set", set.ID).Int("questions", len(set.Questions)).Msg("question set seeded")
	return nil
}

func readQuestionSet(path string) (domain.QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.QuestionSet{}, err
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(data, &set); err == nil && len(set.Questions) > 0 {
		return set, nil
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return domain.QuestionSet{Questions: questions}, nil
}

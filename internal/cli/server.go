package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aiopenai "duk-quiz-service/internal/ai/openai"
	"duk-quiz-service/internal/app"
	"duk-quiz-service/internal/config"
	"duk-quiz-service/internal/domain"
	"duk-quiz-service/internal/infra/memory"
	pgloader "duk-quiz-service/internal/infra/postgres"
	infraredis "duk-quiz-service/internal/infra/redis"
	transport "duk-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	sessions := app.NewSessionService(sessionStore(cfg, redisClient), app.SessionConfig{
		SessionID:    cfg.Quiz.SessionID,
		Teams:        teamsFromConfig(cfg.Quiz.Teams),
		AnswerWindow: config.TTLDuration(cfg.Quiz.AnswerWindow, app.DefaultAnswerWindow),
	})
	generator, answerer := questionSources(cfg, redisClient, pool)
	questions := app.NewQuestionService(sessions, generator, answerer)

	handler := transport.NewHandler(sessions, questions)
	wsHandler := transport.NewWSHandler(sessions)
	router := transport.NewRouter(handler, wsHandler, transport.RouterConfig{
		AdminUser:     cfg.Admin.User,
		AdminPassword: cfg.Admin.Password,
	})

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// generation and image calls can take a while
		WriteTimeout: 90 * time.Second,
	}

	go func() {
		log.Info().Str("port", finalPort).Msg("starting quiz service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server...")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func sessionStore(cfg config.Config, client *redis.Client) app.SessionRepository {
	if client == nil {
		return memory.NewSessionStore()
	}
	return infraredis.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, 12*time.Hour))
}

// questionSources picks the question generator and the Ask-AI answerer.
// Without an API key the quiz runs from the question bank and Ask-AI replies
// with the fallback line.
func questionSources(cfg config.Config, client *redis.Client, pool *pgxpool.Pool) (app.QuestionGenerator, app.AskAiAnswerer) {
	useOpenAI := cfg.AI.Provider == "openai" || (cfg.AI.Provider == "" && cfg.AI.APIKey != "")
	if useOpenAI {
		ai := aiopenai.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.ImageModel)
		log.Info().Str("model", cfg.AI.Model).Msg("using openai question generator")
		return ai, ai
	}

	var loader memory.QuestionSetLoader = memory.NewStaticQuestionLoader(memory.DefaultQuestionSets())
	if pool != nil {
		loader = pgloader.NewQuestionLoader(pool)
	}
	bankTTL := config.TTLDuration(cfg.Quiz.BankTTL, 10*time.Minute)
	var sets app.QuestionSetRepository
	if client != nil {
		sets = infraredis.NewQuestionRepository(client, loader, bankTTL)
	} else {
		sets = memory.NewQuestionRepository(loader, bankTTL)
	}

	setID := cfg.Quiz.QuestionSet
	if setID == "" {
		setID = memory.DefaultSetID
	}
	log.Info().Str("set", setID).Msg("using question bank generator")
	return app.NewBankGenerator(sets, setID), nil
}

func teamsFromConfig(teams []config.TeamConfig) []domain.Team {
	out := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if t.ID == "" {
			continue
		}
		name := t.Name
		if name == "" {
			name = t.ID
		}
		out = append(out, domain.Team{ID: t.ID, Name: name})
	}
	return out
}

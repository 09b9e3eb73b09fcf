package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/pitwall/fantasy-gp/internal/config"
	"github.com/pitwall/fantasy-gp/internal/domain/auditlog"
	"github.com/pitwall/fantasy-gp/internal/domain/event"
	"github.com/pitwall/fantasy-gp/internal/domain/leaderboard"
	"github.com/pitwall/fantasy-gp/internal/domain/pick"
	"github.com/pitwall/fantasy-gp/internal/domain/result"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/account/paddock"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/jobqueue"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/memory"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/postgres"
	"github.com/pitwall/fantasy-gp/internal/interfaces/httpapi"
	idgen "github.com/pitwall/fantasy-gp/internal/platform/id"
	"github.com/pitwall/fantasy-gp/internal/platform/resilience"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

type repositories struct {
	events  event.Repository
	roster  roster.Repository
	picks   pick.Repository
	results result.Repository
	scoring scoring.Repository
	board   leaderboard.Repository
	audit   auditlog.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned closer releases the database handle and must be called after
// the server shuts down.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, closer, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	scheduleSvc := usecase.NewScheduleService(repos.events, repos.roster)
	scoringSvc := usecase.NewScoringService(repos.picks, repos.results, repos.scoring, repos.roster)
	leaderboardSvc := usecase.NewLeaderboardService(
		repos.picks,
		repos.results,
		repos.scoring,
		repos.roster,
		repos.board,
		logger,
	)
	leaderboardSvc.SetRecomputeWorkers(cfg.RecomputeWorkers)

	trigger := buildRecomputeTrigger(cfg, leaderboardSvc, logger)

	pickSvc := usecase.NewPickService(
		repos.picks,
		repos.events,
		repos.results,
		repos.roster,
		repos.audit,
		trigger,
		logger,
	)
	resultSvc := usecase.NewResultService(
		repos.events,
		repos.results,
		repos.scoring,
		repos.roster,
		repos.audit,
		trigger,
		logger,
	)
	profileSvc := usecase.NewProfileService(repos.scoring, idgen.NewRandomGenerator(), trigger, logger)
	simulationSvc := usecase.NewSimulationService(logger)

	verifier := paddock.NewClient(paddock.ClientConfig{
		BaseURL:        cfg.PaddockBaseURL,
		IntrospectPath: cfg.PaddockIntrospectPath,
		Timeout:        cfg.PaddockTimeout,
		CacheTTL:       cfg.PaddockCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PaddockCircuitEnabled,
			FailureThreshold: cfg.PaddockCircuitFailureCount,
			OpenTimeout:      cfg.PaddockCircuitOpenTimeout,
			ProbeLimit:       cfg.PaddockCircuitHalfOpenMaxReq,
		},
	}, logger)

	handler := httpapi.NewHandler(
		scheduleSvc,
		pickSvc,
		scoringSvc,
		leaderboardSvc,
		resultSvc,
		profileSvc,
		simulationSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closer()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closer, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("storage: in-memory with seed data")
		settings := memory.SeedScoringSettings()
		return repositories{
			events:  memory.NewEventRepository(memory.SeedEvents()),
			roster:  memory.NewRosterRepository(memory.SeedEffectiveAt, memory.SeedDrivers(), memory.SeedConstructors()),
			picks:   memory.NewPickRepository(),
			results: memory.NewResultRepository(),
			scoring: memory.NewScoringRepository(&settings),
			board:   memory.NewLeaderboardRepository(),
			audit:   memory.NewAuditLogRepository(),
		}, func() error { return nil }, nil
	}

	db, err := sqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	logger.Info("storage: postgres", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		events:  postgres.NewEventRepository(db),
		roster:  postgres.NewRosterRepository(db),
		picks:   postgres.NewPickRepository(db),
		results: postgres.NewResultRepository(db),
		scoring: postgres.NewScoringRepository(db),
		board:   postgres.NewLeaderboardRepository(db),
		audit:   postgres.NewAuditLogRepository(db),
	}, db.Close, nil
}

func buildRecomputeTrigger(cfg config.Config, leaderboardSvc *usecase.LeaderboardService, logger *slog.Logger) usecase.RecomputeTrigger {
	if !cfg.QStashEnabled {
		logger.Info("recompute trigger: in-process")
		return jobqueue.NewDirectTrigger(leaderboardSvc, logger, 0)
	}

	logger.Info("recompute trigger: qstash", "target", cfg.QStashTargetBaseURL)
	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		Timeout:          cfg.QStashTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			ProbeLimit:       cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger)
}

package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/jobdesc"
	"resume-screener/internal/screening"
	"resume-screener/internal/services/health"
	"resume-screener/internal/shared/cache"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
	"resume-screener/internal/shared/telemetry"
	"resume-screener/internal/similarity"
	"resume-screener/internal/skills"
	"resume-screener/internal/suitability"
)

const embeddingCacheTTL = 7 * 24 * time.Hour

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Uploads          *localstore.Store
	Redis            *cache.Redis
	Vocabulary       skills.Vocabulary
	Jobs             jobdesc.Source
	Scorer           similarity.Scorer
	ModelStore       *suitability.Store
	Classifier       *suitability.Classifier
	ScreeningRepo    screening.Repo
	ScreeningService *screening.Service
	ScreeningHandler *screening.Handler
}

// Build prepares every dependency and the router.
func Build(cfg config.Config) (*App, error) {
	return BuildContext(context.Background(), cfg)
}

// BuildContext is Build with a caller-supplied context for startup I/O.
func BuildContext(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		cfg.UploadDir = "uploads"
	}

	app := &App{Config: cfg}
	ok := false
	defer func() {
		if !ok {
			_ = app.Close()
		}
	}()

	var err error
	if app.DB, err = buildDB(ctx, cfg); err != nil {
		return nil, err
	}
	if app.Store, err = BuildObjectStore(ctx, cfg); err != nil {
		return nil, err
	}
	app.Uploads = localstore.New(cfg.LocalStoreDir)

	if app.Vocabulary, err = buildVocabulary(cfg); err != nil {
		return nil, err
	}
	app.Jobs = jobdesc.NewFileSource(cfg.JobDescriptionPath)
	if app.Scorer, err = buildScorer(ctx, app); err != nil {
		return nil, err
	}

	app.ModelStore = suitability.NewStore(app.Store, cfg.ModelKey)
	if cfg.ModelAutoTrain {
		if err := app.ModelStore.EnsureModel(ctx); err != nil {
			return nil, fmt.Errorf("ensure suitability model: %w", err)
		}
	}
	app.Classifier = suitability.NewClassifier(app.ModelStore, cfg.RejectionThreshold)

	if app.DB != nil {
		app.ScreeningRepo = &screening.PGRepo{DB: app.DB}
	} else {
		app.ScreeningRepo = screening.NewMemoryRepo(screening.DefaultMemoryEntries)
	}

	app.ScreeningService = &screening.Service{
		Uploads:           app.Uploads,
		UploadDir:         cfg.UploadDir,
		Jobs:              app.Jobs,
		Scorer:            app.Scorer,
		Vocab:             app.Vocabulary,
		Classifier:        app.Classifier,
		Repo:              app.ScreeningRepo,
		DefaultExperience: cfg.DefaultExperience,
	}
	app.ScreeningHandler = screening.NewHandler(app.ScreeningService, cfg.ScreenTimeout)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		ScreeningHandler: app.ScreeningHandler,
		Health:           health.NewService(readinessChecks(app)),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"scorer":       app.Scorer.Name(),
		"skills":       app.Vocabulary.Len(),
		"database":     app.DB != nil,
		"redis":        app.Redis != nil,
		"threshold":    cfg.RejectionThreshold,
	})
	ok = true
	return app, nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
		a.Redis = nil
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
		a.DB = nil
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repo", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// BuildObjectStore returns the configured object store for model artifacts.
func BuildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildVocabulary(cfg config.Config) (skills.Vocabulary, error) {
	if strings.TrimSpace(cfg.SkillsFile) == "" {
		return skills.Default(), nil
	}
	return skills.LoadFile(cfg.SkillsFile)
}

func buildScorer(ctx context.Context, app *App) (similarity.Scorer, error) {
	cfg := app.Config
	if cfg.SimilarityStrategy != similarity.StrategyEmbedding {
		return similarity.NewTFIDF(), nil
	}

	embedder, err := similarity.NewOpenAIEmbedder(similarity.OpenAIConfig{
		APIKey:  cfg.EmbeddingAPIKey,
		BaseURL: cfg.EmbeddingBaseURL,
		Model:   cfg.EmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding scorer: %w", err)
	}

	if strings.TrimSpace(cfg.RedisURL) != "" {
		rdb, err := cache.NewRedis(ctx, cfg.RedisURL, embeddingCacheTTL)
		switch {
		case err == nil:
			app.Redis = rdb
			return similarity.NewEmbedding(similarity.NewCachedEmbedder(embedder, rdb, embedder.Model())), nil
		case isDevLike(cfg.Env):
			telemetry.Warn("bootstrap.memory_cache", map[string]any{"reason": "redis connect failed", "error": err})
		default:
			return nil, fmt.Errorf("embedding cache: %w", err)
		}
	}
	return similarity.NewEmbedding(similarity.NewCachedEmbedder(embedder, cache.NewMemory(cache.DefaultMemoryEntries), embedder.Model())), nil
}

func readinessChecks(app *App) map[string]health.Check {
	checks := map[string]health.Check{
		"model": func(ctx context.Context) error {
			_, err := app.ModelStore.Load(ctx)
			return err
		},
		"job_description": func(ctx context.Context) error {
			_, err := app.Jobs.Load(ctx)
			return err
		},
	}
	if app.DB != nil {
		checks["database"] = app.DB.PingContext
	}
	if app.Redis != nil {
		checks["redis"] = app.Redis.Ping
	}
	return checks
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

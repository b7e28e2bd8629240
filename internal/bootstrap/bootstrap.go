// Package bootstrap wires configuration into the services shared by the API
// server, the Lambda function and the CLI.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/bryanwahyu/scriptguard/internal/application/review"
	"github.com/bryanwahyu/scriptguard/internal/config"
	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/infra/ai/openai"
	"github.com/bryanwahyu/scriptguard/internal/infra/ai/prompt"
	mysqlp "github.com/bryanwahyu/scriptguard/internal/infra/db/mysql"
	"github.com/bryanwahyu/scriptguard/internal/infra/db/postgres"
	"github.com/bryanwahyu/scriptguard/internal/infra/logging"
	"github.com/bryanwahyu/scriptguard/internal/infra/rubric"
	"github.com/bryanwahyu/scriptguard/internal/infra/storage"
	"github.com/bryanwahyu/scriptguard/internal/response"
)

// App holds the wired components.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Completer *openai.Client
	Service   *review.Service
	Handler   *response.Handler
}

// New loads the rubric from its configured source and builds the service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.Log)

	rb, err := LoadRubric(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "rubric loaded", "source", cfg.Rubric.Source)

	renderer, err := prompt.New(cfg.Analysis.Brand)
	if err != nil {
		return nil, fmt.Errorf("prompts: %w", err)
	}

	completer := NewCompleter(cfg.OpenAI)
	svc := review.NewService(completer, renderer, rb,
		review.WithLogger(logger),
		review.WithParallel(cfg.Analysis.Parallel),
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Completer: completer,
		Service:   svc,
		Handler:   response.NewHandler(svc, logger),
	}, nil
}

func NewCompleter(cfg config.OpenAIConfig) *openai.Client {
	return openai.NewClient(openai.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})
}

// LoadRubric reads and compiles the rubric once. Database connections are
// closed before returning.
func LoadRubric(ctx context.Context, cfg *config.Config) (*domain.Rubric, error) {
	src, closer, err := OpenRubricSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	rb, err := rubric.Compile(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("rubric (%s): %w", cfg.Rubric.Source, err)
	}
	return rb, nil
}

// RubricWriter persists a rubric document.
type RubricWriter interface {
	Save(ctx context.Context, doc domain.RubricDocument) error
}

// OpenRubricSource returns the configured source. The closer releases any
// connection it holds.
func OpenRubricSource(ctx context.Context, cfg *config.Config) (domain.RubricSource, io.Closer, error) {
	switch cfg.Rubric.Source {
	case config.RubricDefault, "":
		return rubric.DefaultSource{}, nopCloser{}, nil
	case config.RubricFile:
		return rubric.FileSource{Path: cfg.Rubric.Path}, nopCloser{}, nil
	case config.RubricMinio:
		store, err := NewStore(ctx, cfg, false)
		if err != nil {
			return nil, nil, err
		}
		return store.Source(cfg.Minio.ObjectKey), nopCloser{}, nil
	case config.RubricMySQL, config.RubricPostgres:
		repo, db, err := OpenRubricRepository(ctx, cfg, cfg.Rubric.Source)
		if err != nil {
			return nil, nil, err
		}
		return repo, db, nil
	default:
		return nil, nil, fmt.Errorf("%w: rubric.source %q is unknown", config.ErrInvalidConfig, cfg.Rubric.Source)
	}
}

// SQLRubricRepository is satisfied by the MySQL and PostgreSQL repositories.
type SQLRubricRepository interface {
	domain.RubricSource
	RubricWriter
}

// OpenRubricRepository connects to the database of the given driver.
func OpenRubricRepository(ctx context.Context, cfg *config.Config, driver string) (SQLRubricRepository, *sql.DB, error) {
	switch driver {
	case config.RubricMySQL:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		return mysqlp.NewRubricRepository(db), db, nil
	case config.RubricPostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewRubricRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q is not a database driver", config.ErrInvalidConfig, driver)
	}
}

// NewStore connects to the configured MinIO bucket.
func NewStore(ctx context.Context, cfg *config.Config, createBucket bool) (*storage.Store, error) {
	return storage.New(ctx, storage.Options{
		Endpoint:     cfg.Minio.Endpoint,
		Region:       cfg.Minio.Region,
		Bucket:       cfg.Minio.BucketName,
		AccessKey:    cfg.Minio.AccessKey,
		SecretKey:    cfg.Minio.SecretKey,
		UseSSL:       cfg.Minio.UseSSL,
		CreateBucket: createBucket,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nileshk/legal-analyzer/internal/analysis/classifier"
	"github.com/nileshk/legal-analyzer/internal/analysis/framework"
	"github.com/nileshk/legal-analyzer/internal/analysis/scoring"
	"github.com/nileshk/legal-analyzer/internal/config"
	"github.com/nileshk/legal-analyzer/internal/core/ports"
	"github.com/nileshk/legal-analyzer/internal/core/usecase"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/chunking"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/extractor"
	graphneo4j "github.com/nileshk/legal-analyzer/internal/infrastructure/graph/neo4j"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/queue/nats"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/report/excel"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/repository/postgres"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/resilience"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/storage/localfs"
	"github.com/nileshk/legal-analyzer/internal/observability/logging"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue *nats.Queue
	Repo  *postgres.DocumentRepository

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	AnalyzeUC ports.DocumentAnalyzer
	ReportUC  ports.ReportService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	var executor *resilience.Executor
	if cfg.ResilienceEnabled {
		executor = resilience.NewExecutor(resilience.DefaultPolicy())
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var graph ports.GraphStore
	var graphStore *graphneo4j.Store
	if cfg.GraphEnabled {
		graphStore, err = graphneo4j.NewWithOptions(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, graphneo4j.Options{
			ResilienceExecutor: executor,
			Logger:             logger,
		})
		if err != nil {
			return nil, fmt.Errorf("init knowledge graph: %w", err)
		}
		if err := graphStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure graph schema: %w", err)
		}
		graph = graphStore
	}

	classifierRegistry := classifier.DefaultRegistry()
	if cfg.ClassifierOverridesPath != "" {
		if err := classifierRegistry.LoadOverrides(cfg.ClassifierOverridesPath); err != nil {
			return nil, fmt.Errorf("load classifier overrides: %w", err)
		}
	}
	frameworkRegistry := framework.DefaultRegistry()
	if cfg.FrameworkOverridesPath != "" {
		if err := frameworkRegistry.LoadOverrides(cfg.FrameworkOverridesPath); err != nil {
			return nil, fmt.Errorf("load framework overrides: %w", err)
		}
	}
	scoringRegistry := scoring.DefaultRegistry()
	if cfg.ScoringOverridesPath != "" {
		if err := scoringRegistry.LoadOverrides(cfg.ScoringOverridesPath); err != nil {
			return nil, fmt.Errorf("load scoring overrides: %w", err)
		}
	}

	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	textExtractor := extractor.NewDispatcher(storage)

	analyzeUC := usecase.NewAnalyzeDocumentUseCase(
		classifier.New(classifierRegistry, logger),
		framework.NewSelector(frameworkRegistry),
		scoring.NewEngine(scoringRegistry, logger),
		chunker,
		logger,
	)
	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, textExtractor, analyzeUC, graph)
	reportUC := usecase.NewBuildReportUseCase(repo, excel.NewExporter())

	return &App{
		Config: cfg,
		Logger: logger,

		Queue: queue,
		Repo:  repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		AnalyzeUC: analyzeUC,
		ReportUC:  reportUC,

		closeFn: func() {
			queue.Close()
			if graphStore != nil {
				_ = graphStore.Close(context.Background())
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

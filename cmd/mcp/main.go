package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/nileshk/legal-analyzer/internal/adapters/mcp"
	"github.com/nileshk/legal-analyzer/internal/analysis/classifier"
	"github.com/nileshk/legal-analyzer/internal/analysis/framework"
	"github.com/nileshk/legal-analyzer/internal/analysis/scoring"
	"github.com/nileshk/legal-analyzer/internal/config"
	"github.com/nileshk/legal-analyzer/internal/core/usecase"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/chunking"
	"github.com/nileshk/legal-analyzer/internal/observability/logging"
)

const version = "1.0.0"

// The MCP binary runs the analysis core only: no database, queue or
// graph connections, so it starts instantly under any MCP client.
func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logs go to stderr: stdout carries the MCP protocol stream.
	logger := logging.NewJSONLoggerTo(os.Stderr, "mcp", cfg.LogLevel)

	classifierRegistry := classifier.DefaultRegistry()
	if cfg.ClassifierOverridesPath != "" {
		if err := classifierRegistry.LoadOverrides(cfg.ClassifierOverridesPath); err != nil {
			log.Fatalf("load classifier overrides: %v", err)
		}
	}
	frameworkRegistry := framework.DefaultRegistry()
	if cfg.FrameworkOverridesPath != "" {
		if err := frameworkRegistry.LoadOverrides(cfg.FrameworkOverridesPath); err != nil {
			log.Fatalf("load framework overrides: %v", err)
		}
	}
	scoringRegistry := scoring.DefaultRegistry()
	if cfg.ScoringOverridesPath != "" {
		if err := scoringRegistry.LoadOverrides(cfg.ScoringOverridesPath); err != nil {
			log.Fatalf("load scoring overrides: %v", err)
		}
	}

	cls := classifier.New(classifierRegistry, logger)
	analyzer := usecase.NewAnalyzeDocumentUseCase(
		cls,
		framework.NewSelector(frameworkRegistry),
		scoring.NewEngine(scoringRegistry, logger),
		chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		logger,
	)

	srv, err := mcpadapter.NewServer("legal-analyzer", version, cls, analyzer)
	if err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("mcp serve error: %v", err)
	}
}

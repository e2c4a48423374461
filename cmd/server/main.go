// Command server is the process entry point: it loads configuration,
// performs the startup health check §5 requires, wires every capability
// singleton and port adapter, and serves the HTTP boundary of §6. Any
// wiring failure aborts startup with a fatal log line — fail-fast rather
// than per-request discovery, per §5's "Startup health check".
package main

import (
	"context"
	"log"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/kocory1/AllFamilyAI/internal/answer"
	"github.com/kocory1/AllFamilyAI/internal/config"
	"github.com/kocory1/AllFamilyAI/internal/embedding"
	"github.com/kocory1/AllFamilyAI/internal/generator"
	"github.com/kocory1/AllFamilyAI/internal/httpapi"
	"github.com/kocory1/AllFamilyAI/internal/novelty"
	"github.com/kocory1/AllFamilyAI/internal/observability"
	"github.com/kocory1/AllFamilyAI/internal/promptcatalog"
	"github.com/kocory1/AllFamilyAI/internal/usecase"
	"github.com/kocory1/AllFamilyAI/internal/vectorstore"
	"github.com/kocory1/AllFamilyAI/pkg/logging"
	"github.com/kocory1/AllFamilyAI/services/llm"
)

const startupTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	logger := logging.Default().With("service", "allfamilyai-server")
	slog.SetDefault(logger.Slog())

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize tracing: %v", err)
	}
	defer shutdownTracer(context.Background())

	metrics, err := observability.NewMetrics()
	if err != nil {
		log.Fatalf("FATAL: failed to initialize metrics: %v", err)
	}
	defer metrics.Shutdown(context.Background())

	// Build the Weaviate client and ensure its schema before serving. No
	// local persistence directory is checked for writability: the store
	// is the remote Weaviate instance at WEAVIATE_URL.
	weaviateClient := mustWeaviateClient(cfg.WeaviateURL)
	if err := vectorstore.EnsureSchema(ctx, weaviateClient); err != nil {
		log.Fatalf("FATAL: vector store schema check failed: %v", err)
	}

	embedder := embedding.NewHTTPProvider(cfg.EmbeddingURL, cfg.EmbeddingModel)
	store := vectorstore.New(weaviateClient, embedder)

	llmClient, err := llm.NewOpenAIClient(cfg.DefaultModel)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize LLM client: %v", err)
	}

	// (c) construct both generators, which loads their templates.
	catalog, err := promptcatalog.Load("prompts")
	if err != nil {
		log.Fatalf("FATAL: failed to load prompt catalog: %v", err)
	}
	personalGen := generator.NewPersonal(llmClient, catalog, cfg.DefaultModel, cfg.Temperature)
	familyGen := generator.NewFamily(llmClient, catalog, cfg.DefaultModel, cfg.Temperature)

	// (d) construct the summary generator.
	summaryGen := generator.NewSummary(llmClient, catalog, cfg.DefaultModel, cfg.Temperature)

	noveltyController := novelty.Controller{
		Threshold:   cfg.SimilarityThreshold,
		MaxAttempts: cfg.MaxRegeneration,
	}

	personalUC := usecase.NewPersonalRAG(store, personalGen, noveltyController)
	familyUC := usecase.NewFamilyRAG(store, familyGen, noveltyController)
	familyRecentUC := usecase.NewFamilyRecent(store, familyGen, noveltyController)
	summaryUC := usecase.NewFamilySummary(store, summaryGen)
	lifecycleUC := usecase.NewMemberLifecycle(store)
	analyzer := answer.NewAnalyzer(llmClient, cfg.DefaultModel)

	handler := httpapi.NewHandler(personalUC, familyUC, familyRecentUC, summaryUC, lifecycleUC, analyzer, metrics)

	router := gin.Default()
	router.Use(otelgin.Middleware("allfamilyai-server"))
	httpapi.NewRouter(router, handler, metrics.Handler())

	slog.Info("starting server", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("FATAL: server exited: %v", err)
	}
}

// mustWeaviateClient builds the Weaviate client from the configured URL,
// aborting startup on a missing or malformed URL (reachability is first
// exercised by the EnsureSchema call that follows in main), per
// §5's "any failure aborts startup with a fatal error" requirement —
// stricter than the teacher's own main.go, which degrades to a
// "lightweight mode" on a bad URL. This service's core has no lightweight
// mode: the vector store is load-bearing for every use case.
func mustWeaviateClient(rawURL string) *weaviate.Client {
	trimmed := strings.Trim(rawURL, "\"' ")
	if trimmed == "" {
		log.Fatalf("FATAL: WEAVIATE_URL is not configured")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		log.Fatalf("FATAL: WEAVIATE_URL is invalid: %q (%v)", rawURL, err)
	}

	client, err := weaviate.NewClient(weaviate.Config{Host: parsed.Host, Scheme: parsed.Scheme})
	if err != nil {
		log.Fatalf("FATAL: failed to construct Weaviate client: %v", err)
	}
	return client
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dhiaselmi1/documind-ai/internal/agents"
	"github.com/dhiaselmi1/documind-ai/internal/application"
	appanalysis "github.com/dhiaselmi1/documind-ai/internal/application/analysis"
	appdocs "github.com/dhiaselmi1/documind-ai/internal/application/documents"
	"github.com/dhiaselmi1/documind-ai/internal/config"
	anadomain "github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	docdomain "github.com/dhiaselmi1/documind-ai/internal/domain/documents"
	"github.com/dhiaselmi1/documind-ai/internal/domain/faults"
	"github.com/dhiaselmi1/documind-ai/internal/infra/ai/openai"
	"github.com/dhiaselmi1/documind-ai/internal/infra/db/memory"
	mysqlp "github.com/dhiaselmi1/documind-ai/internal/infra/db/mysql"
	postgresp "github.com/dhiaselmi1/documind-ai/internal/infra/db/postgres"
	"github.com/dhiaselmi1/documind-ai/internal/infra/extract"
	"github.com/dhiaselmi1/documind-ai/internal/infra/httpserver"
	minioStore "github.com/dhiaselmi1/documind-ai/internal/infra/storage"
	"github.com/dhiaselmi1/documind-ai/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config; jalan dengan defaults kalau file tidak ada
	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("config load error: %v", err)
		}
		log.Printf("config file %s not found, using defaults", path)
		cfg = config.Default()
	}

	ctx := context.Background()

	// pick store backend
	var (
		docsRepo    docdomain.Repository
		reportsRepo anadomain.Repository
		faultsRepo  faults.Recorder
		checkers    = map[string]middleware.HealthChecker{}
	)
	switch cfg.Database.Driver {
	case "memory":
		docsRepo = memory.NewDocumentStore()
		reportsRepo = memory.NewReportStore()
		faultsRepo = memory.NewFaultLog()
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		docsRepo = mysqlp.NewDocumentRepository(db)
		reportsRepo = mysqlp.NewReportRepository(db)
		faultsRepo = mysqlp.NewFaultRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		docsRepo = postgresp.NewDocumentRepository(db)
		reportsRepo = postgresp.NewReportRepository(db)
		faultsRepo = memory.NewFaultLog() // no postgres fault table yet
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	default:
		log.Fatalf("unknown database driver: %q", cfg.Database.Driver)
	}

	// init minio (optional)
	var archive docdomain.ArchiveStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	// build agent registry
	agentTimeout := time.Duration(cfg.Analysis.AgentTimeoutMS) * time.Millisecond
	registry := agents.NewRegistry()

	var summarizer agents.Agent = agents.NewSummarizer(agents.SummarizerConfig{
		MaxSentences: cfg.Analysis.Summary.MaxSentences,
		MinLength:    cfg.Analysis.Summary.MinLength,
		MaxTopics:    cfg.Analysis.Summary.MaxTopics,
	})
	if cfg.OpenAI.Enabled {
		summarizer = openai.NewSummarizer(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		log.Printf("summary agent: model-backed (%s)", cfg.OpenAI.Model)
	}
	mustRegister(registry, summarizer, agentTimeout)
	mustRegister(registry, agents.NewRiskDetector(agents.RiskConfig{
		Indicators: riskIndicators(cfg.Analysis.RiskIndicators),
	}), agentTimeout)
	mustRegister(registry, agents.NewDecisionExtractor(agents.DecisionConfig{}), agentTimeout)

	orchestrator := agents.NewOrchestrator(
		registry,
		time.Duration(cfg.Analysis.GlobalTimeoutMS)*time.Millisecond,
		agents.NewCorrelator(cfg.Analysis.Correlator.MinSharedTokens),
	)

	// init services
	docsSvc := &appdocs.Service{
		Repo:      docsRepo,
		Extractor: extract.New(),
		Archive:   archive,
		Clock:     application.SystemClock{},
	}
	analysisSvc := &appanalysis.Service{
		Documents:    docsRepo,
		Reports:      reportsRepo,
		Faults:       faultsRepo,
		Orchestrator: orchestrator,
		Clock:        application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(docsSvc, analysisSvc, httpserver.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Checkers:       checkers,
		RateLimit:      cfg.Server.RateLimit,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // analyze is synchronous
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s (store=%s agents=%d)", addr, cfg.Database.Driver, registry.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func mustRegister(reg *agents.Registry, a agents.Agent, timeout time.Duration) {
	if err := reg.Register(a, timeout); err != nil {
		log.Fatalf("agent registry error: %v", err)
	}
}

// riskIndicators maps the yaml category keys onto the typed ones,
// keeping the defaults when the file has none.
func riskIndicators(raw map[string][]string) map[anadomain.Category][]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[anadomain.Category][]string, len(raw))
	for cat, phrases := range raw {
		out[anadomain.Category(cat)] = phrases
	}
	return out
}

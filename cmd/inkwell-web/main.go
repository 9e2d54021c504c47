// Command inkwell-web serves the Inkwell journaling API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scrypster/inkwell/internal/config"
	"github.com/scrypster/inkwell/internal/engine"
	"github.com/scrypster/inkwell/internal/llm"
	"github.com/scrypster/inkwell/internal/storage/sqlite"
	"github.com/scrypster/inkwell/web/handlers"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	store, err := sqlite.NewEntryStore(cfg.Storage.DataPath + "/inkwell.db")
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	analyzer, err := llm.NewAnalyzerFromConfig(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize analyzer: %v", err)
	}
	if analyzer != nil {
		log.Printf("Remote analysis enabled (model: %s)", analyzer.GetModel())
	} else {
		log.Printf("Remote analysis disabled, using local classifier")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline := engine.NewEnrichmentPipeline(remoteOrNil(analyzer))
	engineCfg := engine.Config{
		NumWorkers: cfg.Engine.Workers,
		QueueSize:  cfg.Engine.QueueSize,
	}
	journal, err := engine.NewJournalEngine(ctx, store, pipeline, engineCfg)
	if err != nil {
		log.Fatalf("Failed to initialize journal engine: %v", err)
	}
	journal.Start(ctx)

	api := handlers.NewJournalAPI(journal)
	limiter := handlers.NewRateLimiter(10.0, 20)
	router := handlers.NewRouter(api, limiter)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Inkwell API running at http://%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	// Drain in-flight enrichments before closing the store.
	journal.Shutdown()
}

// remoteOrNil converts a possibly-nil *llm.Analyzer into the engine's
// RemoteAnalyzer interface without producing a typed-nil interface value.
func remoteOrNil(analyzer *llm.Analyzer) engine.RemoteAnalyzer {
	if analyzer == nil {
		return nil
	}
	return analyzer
}

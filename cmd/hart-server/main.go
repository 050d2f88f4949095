package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sbogelman-afk/hart-backend-dual/internal/auditstore"
	"github.com/sbogelman-afk/hart-backend-dual/internal/config"
	"github.com/sbogelman-afk/hart-backend-dual/internal/docrender"
	"github.com/sbogelman-afk/hart-backend-dual/internal/evaluation"
	"github.com/sbogelman-afk/hart-backend-dual/internal/httpapi"
	"github.com/sbogelman-afk/hart-backend-dual/internal/llm"
	"github.com/sbogelman-afk/hart-backend-dual/internal/telemetry"
)

func main() {
	var (
		addr    = flag.String("addr", "", "Listen address (overrides config)")
		cfgFile = flag.String("config", "", "Path to config file (optional)")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if cfg.APIToken == "" {
		log.Fatal("missing API token: set HART_API_TOKEN or API_TOKEN")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, "hart-server", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("trace shutdown: %v", err)
		}
	}()

	generator, err := llm.New(llm.Config{
		Provider:          cfg.Provider,
		Model:             cfg.Model,
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		MaxTokens:         cfg.MaxTokens,
		Timeout:           cfg.RequestTimeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		log.Fatal(err)
	}

	var store *auditstore.Store
	if cfg.DBPath != "" {
		store, err = auditstore.Open(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
	}

	evaluator := evaluation.NewEvaluator(generator, docrender.NewChromiumRenderer())
	handler := httpapi.NewServer(evaluator, store, httpapi.Config{
		Token:          cfg.APIToken,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	log.Printf("hart-server listening on %s (provider=%s)", cfg.Addr, cfg.Provider)
	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

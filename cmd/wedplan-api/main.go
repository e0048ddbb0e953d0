package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jask/wedplan/internal/assistant"
	"github.com/jask/wedplan/internal/config"
	"github.com/jask/wedplan/internal/database"
	"github.com/jask/wedplan/internal/logging"
	"github.com/jask/wedplan/internal/secrets"
	"github.com/jask/wedplan/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "store-key" {
		if err := storeKey(cfg.Assistant.Provider); err != nil {
			log.Fatalf("store key: %v", err)
		}
		return
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Server.DatabasePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Server.DatabasePath); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if len(os.Args) > 1 && os.Args[1] == "reset" {
		if err := database.Reset(ctx, db); err != nil {
			log.Fatalf("reset: %v", err)
		}
		logger.Info("database reset", "path", cfg.Server.DatabasePath)
	}
	if cfg.Server.Seed {
		n, err := database.SeedDefaults(ctx, db)
		if err != nil {
			log.Fatalf("seed defaults: %v", err)
		}
		if n > 0 {
			logger.Info("seeded sample vendors", "count", n)
		}
	}

	cfg.Assistant.APIKey = resolveAPIKey(cfg.Assistant)
	planner, err := assistant.New(cfg.Assistant, logger)
	if err != nil {
		log.Fatalf("assistant: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.New(db, planner, server.Options{AllowedOrigin: cfg.Server.AllowedOrigin}, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logger.Info("listening", "addr", srv.Addr, "assistant", cfg.Assistant.Provider)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}

// resolveAPIKey prefers the env var, then the secrets store, then the
// config file.
func resolveAPIKey(cfg config.AssistantConfig) string {
	if env := strings.TrimSpace(cfg.APIKeyEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	if store, err := secrets.Default(); err == nil {
		if k, err := store.Get(cfg.Provider); err == nil {
			return k
		}
	}
	return strings.TrimSpace(cfg.APIKey)
}

// storeKey reads a key from stdin and saves it for provider.
func storeKey(provider string) error {
	if strings.EqualFold(provider, "offline") {
		provider = "openai"
	}
	fmt.Printf("API key for %s: ", provider)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if strings.TrimSpace(line) == "" {
		if err != nil {
			return err
		}
		return errors.New("empty key")
	}
	store, err := secrets.Default()
	if err != nil {
		return err
	}
	if err := store.Put(provider, line); err != nil {
		return err
	}
	fmt.Println("saved")
	return nil
}

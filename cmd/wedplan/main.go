package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/chat"
	"github.com/jask/wedplan/internal/config"
	"github.com/jask/wedplan/internal/domain"
	"github.com/jask/wedplan/internal/draft"
	"github.com/jask/wedplan/internal/logging"
	"github.com/jask/wedplan/internal/session"
	"github.com/jask/wedplan/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "init-config" {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("save config: %v", err)
		}
		fmt.Println("wrote", config.Path())
		return
	}

	// the alt screen owns the terminal, so logs go to a file
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(os.Getenv("HOME"), ".local", "state", "wedplan", "wedplan.log")
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	profile, err := provisionRequest(cfg.User)
	if err != nil {
		log.Fatalf("user profile: %v", err)
	}

	ctx := context.Background()
	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	store := session.NewStore(logger)
	orch := chat.NewOrchestrator(client, store, cfg.Chat.Timeout, logger)

	logger.Info("starting client", "backend", cfg.Backend.BaseURL)
	p := tea.NewProgram(tui.New(tui.Options{
		Context:    ctx,
		Backend:    client,
		User:       profile,
		Normalizer: draft.Normalizer{RequireServices: cfg.VendorForm.RequireServices},
		Chat:       orch,
		Session:    store,
		Logger:     logger,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func provisionRequest(u config.UserConfig) (api.ProvisionRequest, error) {
	role, err := domain.ParseRole(u.Role)
	if err != nil {
		return api.ProvisionRequest{}, err
	}
	req := api.ProvisionRequest{Name: u.Name, Email: u.Email, Phone: u.Phone, Role: role}
	if u.Budget > 0 || u.Location != "" || u.StylePreference != "" || u.GuestCount > 0 {
		req.Preferences = &domain.Preferences{
			Budget:          u.Budget,
			Location:        u.Location,
			StylePreference: u.StylePreference,
			GuestCount:      u.GuestCount,
		}
	}
	return req, nil
}

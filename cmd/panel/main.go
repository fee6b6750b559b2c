package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/news-collector/internal/config"
	"github.com/Nazarious-ucu/news-collector/internal/logger"
	"github.com/Nazarious-ucu/news-collector/internal/panel"
	"github.com/Nazarious-ucu/news-collector/internal/prefs"
	"github.com/Nazarious-ucu/news-collector/internal/subscribe"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewClientConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	// the terminal belongs to the form, logs go to file only
	l, err := logger.NewFileOnlyLogger(cfg.LogsPath, "panel")
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var preferences panel.Preferences
	store, err := prefs.Open(ctx, cfg.Prefs)
	if err != nil {
		l.Error().Err(err).Str("backend", cfg.Prefs.Backend).Msg("preference store unavailable")
	} else {
		defer func() {
			if err := store.Close(); err != nil {
				l.Error().Err(err).Msg("failed to close preference store")
			}
		}()
		preferences = prefs.NewPreferences(store, l)
	}

	fileLogger, err := logger.NewFileLogger(cfg.HTTPLogsPath)
	if err != nil {
		l.Warn().Err(err).Msg("HTTP traffic log disabled")
		fileLogger = zap.NewNop()
	}
	defer func() { _ = fileLogger.Sync() }()

	httpClient := &http.Client{
		Transport: logger.NewRoundTripper(fileLogger),
		Timeout:   cfg.Timeout(),
	}
	client := subscribe.NewClient(cfg.SubscribeURL, httpClient, l)

	controller := panel.NewController(preferences, client, l)

	program := tea.NewProgram(panel.NewModel(ctx, controller), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		l.Error().Err(err).Msg("panel exited with error")
	}
}

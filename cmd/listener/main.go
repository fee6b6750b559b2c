package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/news-collector/internal/config"
	"github.com/Nazarious-ucu/news-collector/internal/listener"
	"github.com/Nazarious-ucu/news-collector/internal/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewClientConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	// stdout carries native-messaging frames
	l, err := logger.NewFileOnlyLogger(cfg.ListenerLogsPath, "listener")
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := listener.NewListener(l).Serve(ctx, os.Stdin); err != nil {
		l.Error().Err(err).Msg("listener stopped")
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/courtside-club/bracket-bot/app"
	"github.com/courtside-club/bracket-bot/app/shared/observability"
	"github.com/courtside-club/bracket-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	obs := observability.New("bracket-bot", observability.ParseLevel(cfg.Observability.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer application.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		obs.Logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}

	obs.Logger.Info("Application shut down gracefully")
}

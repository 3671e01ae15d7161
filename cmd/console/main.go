package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"parkinglot/internal/client"
	"parkinglot/internal/config"
	"parkinglot/internal/console"
)

func main() {
	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIBaseURL, cfg.AdminToken, nil)
	if err := console.New(api, os.Stdin, os.Stdout, os.Stderr).Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Console: %v", err)
	}
}

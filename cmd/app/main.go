package main

import (
	"flag"
	"log"
	"os"

	"github.com/nicgenovese/polymarket-signal-service/internal/di"
	"github.com/nicgenovese/polymarket-signal-service/pkg/config"
	"github.com/nicgenovese/polymarket-signal-service/pkg/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", server.ModeIntegrated, "run mode: analyze, serve, or integrated")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s mode=%s sink=%s", cfg.Environment, *mode, cfg.Sink.Type)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(*mode); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/di"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/config"
)

func main() {
	// .env is optional; env vars override YAML either way
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

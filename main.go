package main

import (
	"flag"
	"log"

	"exchange-frontend/internal/config"
	"exchange-frontend/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the configuration file")
	flag.StringVar(configPath, "c", "config.yml", "path to the configuration file (shorthand)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

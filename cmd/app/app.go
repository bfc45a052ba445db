package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/DRSN-tech/match-engine/internal/app"
	config "github.com/DRSN-tech/match-engine/internal/cfg"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	if err := godotenv.Load(); err != nil {
		log.Debugf(".env not found, relying on environment")
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}

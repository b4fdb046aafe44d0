package main

import (
	"os"

	"bumpdeps/cmd/bumpdeps/cmds"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Debug("The .env file not found.")
	}

	if err := cmds.Execute(); err != nil {
		log.WithError(err).Error("bumpdeps failed")
		os.Exit(1)
	}
}

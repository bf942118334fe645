package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type config struct {
	Port         string
	LevelsDir    string
	DefaultLevel string
}

// loadConfig reads an optional .env file, then the environment.
func loadConfig() config {
	if err := godotenv.Load(); err != nil {
		log.Debugf(".env not loaded: %v", err)
	}

	level, err := log.ParseLevel(getEnvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		log.Warnf("bad LOG_LEVEL: %v", err)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	return config{
		Port:         port,
		LevelsDir:    getEnvWithDefault("LEVELS_DIR", "data"),
		DefaultLevel: getEnvWithDefault("DEFAULT_LEVEL", "level_1"),
	}
}

func getEnvWithDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

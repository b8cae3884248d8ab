package config

import (
	"os"
)

type Config struct {
	Port            string
	SecretKey       string
	PlayersCSV      string
	DatabaseURL     string
	Title           string
	DefaultDivision string
	DefaultTeam     string
	LogLevel        string
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8050"),
		SecretKey:       getEnv("SECRET_KEY", getEnv("secret_key", "secret")),
		PlayersCSV:      getEnv("PLAYERS_CSV", "players.csv"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Title:           getEnv("APP_TITLE", "WCBU 2017 Statistics"),
		DefaultDivision: getEnv("DEFAULT_DIVISION", "Mixed"),
		DefaultTeam:     getEnv("DEFAULT_TEAM", "India"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

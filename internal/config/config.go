package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	CORSOrigins []string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:  os.Getenv("SERVER_PORT"),
		DBPath:      os.Getenv("DB_PATH"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		JWTAudience: os.Getenv("JWT_AUDIENCE"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "project-board.db"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "development-insecure-secret-change-me"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "project-board-api"
	}
	if cfg.JWTAudience == "" {
		cfg.JWTAudience = "project-board-clients"
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr    string
	GinMode    string
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string
	JWTSecret  string
}

func LoadEnv() Env {
	// Local .env is optional; deployments set real env vars.
	_ = godotenv.Load()

	return Env{
		AppAddr:    getenv("APP_ADDR", ":8080"),
		GinMode:    strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBHost:     getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:     getenv("DB_NAME", "passenger_transportation"),
		JWTSecret:  getenv("JWT_SECRET", "change-me-in-production"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

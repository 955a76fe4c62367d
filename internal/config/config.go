package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env           string
	HTTPPort      string
	DBPath        string
	AccessSecret  string
	RefreshSecret string
	RateRPS       int
}

func Load() Config {
	cfg := Config{
		Env:           get("APP_ENV", "dev"),
		HTTPPort:      get("HTTP_PORT", "3001"),
		DBPath:        get("DB_PATH", "db.json"),
		AccessSecret:  get("JWT_ACCESS_SECRET", "changeme-access"),
		RefreshSecret: get("JWT_REFRESH_SECRET", "changeme-refresh"),
		RateRPS:       getInt("RATE_RPS", 100),
	}
	return cfg
}

func get(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	Timezone      string
	DBPath        string
	UploadDir     string
	PublicBaseURL string
	LLMProvider   string // openai|anthropic|mock
	LLMEndpoint   string
	LLMAPIKey     string `json:"-"`
	LLMModel      string
	LogLevel      string
	LogDev        bool
	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

func Load() AppConfig {
	loaded := godotenv.Load() == nil

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dev, _ := strconv.ParseBool(get("LOG_DEV", "false"))
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		Timezone:      get("TZ_BUSINESS", "Asia/Tokyo"),
		DBPath:        get("DB_PATH", "kiku.db"),
		UploadDir:     get("UPLOAD_DIR", "uploads"),
		PublicBaseURL: get("PUBLIC_BASE_URL", "/uploads"),
		LLMProvider:   get("LLM_PROVIDER", ""),
		LLMEndpoint:   get("LLM_ENDPOINT", ""),
		LLMAPIKey:     get("LLM_API_KEY", ""),
		LLMModel:      get("LLM_MODEL", ""),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogDev:        dev,
		EnvFileLoaded: loaded,
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "mock"
		if cfg.LLMAPIKey != "" {
			cfg.LLMProvider = "openai"
		}
	}
	return cfg
}

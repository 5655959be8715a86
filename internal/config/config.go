// Package config configuração da aplicação via variáveis de ambiente.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Backends de armazenamento suportados.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config todas as opções da aplicação. As chaves dos blobs mantêm os
// nomes históricos do formato exportado pelo app original.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8787"`

	// Armazenamento
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"file"` // file|redis|postgres
	DataDir        string `envconfig:"DATA_DIR" default:"./data"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN" default:""`
	ProvidersKey   string `envconfig:"PROVIDERS_KEY" default:"serviceProvidersDB"`
	SpecialtiesKey string `envconfig:"SPECIALTIES_KEY" default:"serviceSpecialtiesDB"`

	// API de extração (Gemini)
	GeminiBaseURL    string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiFlashModel string `envconfig:"GEMINI_FLASH_MODEL" default:"gemini-2.5-flash"`
	GeminiProModel   string `envconfig:"GEMINI_PRO_MODEL" default:"gemini-2.5-pro"`

	// DDD prefixado a telefones extraídos sem código de área.
	DefaultDDD string `envconfig:"DEFAULT_DDD" default:"86"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json|console
}

// Load lê a configuração do ambiente e valida as combinações.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch c.StorageBackend {
	case BackendFile, BackendRedis:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	return &c, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
)

const MinSessionTTL = time.Minute

type Config struct {
	Port string

	LLMProvider     string
	VertexProjectID string
	VertexLocation  string
	// VertexCredentialsFile is optional; application default credentials
	// are used when empty.
	VertexCredentialsFile string
	OpenAIAPIKey          string
	DeepModel             string
	FastModel             string

	SessionTTL     time.Duration
	RateLimitRPM   int
	RateLimitBurst int
}

// Load reads the process environment. Call godotenv.Load first to pick up a
// local .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  getenv("PORT", "8080"),
		LLMProvider:           strings.ToLower(getenv("LLM_PROVIDER", ProviderVertex)),
		VertexProjectID:       os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:        getenv("VERTEX_LOCATION", "us-central1"),
		VertexCredentialsFile: os.Getenv("VERTEX_CREDENTIALS_FILE"),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		DeepModel:             os.Getenv("DEEP_MODEL"),
		FastModel:             os.Getenv("FAST_MODEL"),
	}

	var errs []error
	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getenv("SESSION_TTL", "2h")); err != nil {
		errs = append(errs, fmt.Errorf("SESSION_TTL: %w", err))
	} else if cfg.SessionTTL < MinSessionTTL {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be at least %s", MinSessionTTL))
	}
	if cfg.RateLimitRPM, err = strconv.Atoi(getenv("RATE_LIMIT_RPM", "60")); err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPM: %w", err))
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "10")); err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST: %w", err))
	}

	switch cfg.LLMProvider {
	case ProviderVertex:
		if cfg.VertexProjectID == "" {
			errs = append(errs, errors.New("VERTEX_PROJECT_ID environment variable is not set"))
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY environment variable is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER %q must be %q or %q", cfg.LLMProvider, ProviderVertex, ProviderOpenAI))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

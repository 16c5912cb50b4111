package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

const DefaultAPIBase = "http://localhost:8000"

type AppConfig struct {
	Env                Environment
	LogLevel           string
	ServerPort         string
	RawBodyLog         bool
	HttpTimeoutSeconds int
}

type CatalogConfig struct {
	URL string
}

type SearchConfig struct {
	DefaultTopK int
	MaxTopK     int
}

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Search  SearchConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")
	env := parseEnvironment(appEnv)

	logLevel := getLogLevel(env)

	return &Config{
		App: AppConfig{
			Env:                env,
			LogLevel:           logLevel,
			ServerPort:         getEnv("APP_SERVER_PORT", "3000"),
			RawBodyLog:         getEnvBool("APP_RAW_BODY_LOG", false),
			HttpTimeoutSeconds: getEnvInt("APP_HTTP_TIMEOUT_SECONDS", 0),
		},
		Catalog: CatalogConfig{
			URL: strings.TrimRight(getEnv("API_BASE", DefaultAPIBase), "/"),
		},
		Search: SearchConfig{
			DefaultTopK: getEnvInt("SEARCH_DEFAULT_TOP_K", 5),
			MaxTopK:     getEnvInt("SEARCH_MAX_TOP_K", 20),
		},
	}, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Catalog.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("API_BASE must be an absolute http(s) URL, got %q", c.Catalog.URL)
	}
	if _, err := strconv.Atoi(c.App.ServerPort); err != nil {
		return fmt.Errorf("APP_SERVER_PORT must be numeric, got %q", c.App.ServerPort)
	}
	if c.App.HttpTimeoutSeconds < 0 {
		return fmt.Errorf("APP_HTTP_TIMEOUT_SECONDS cannot be negative")
	}
	if c.Search.MaxTopK < 1 {
		return fmt.Errorf("SEARCH_MAX_TOP_K must be at least 1")
	}
	if c.Search.DefaultTopK < 1 || c.Search.DefaultTopK > c.Search.MaxTopK {
		return fmt.Errorf("SEARCH_DEFAULT_TOP_K must be between 1 and %d", c.Search.MaxTopK)
	}
	return nil
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

func getLogLevel(env Environment) string {
	if env == Production {
		return getEnv("APP_LOG_LEVEL", "info")
	}

	return getEnv("APP_LOG_LEVEL", "debug")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value == "true" {
		return true
	}
	return defaultValue
}

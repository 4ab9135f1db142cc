package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the endpoint the status view reads when API_URL is unset.
const DefaultAPIURL = "http://localhost:8080"

type Config struct {
	Server    ServerConfig
	Web       WebConfig
	Redis     RedisConfig
	Greeting  GreetingConfig
	Endpoint  EndpointConfig
	ViewStore ViewStoreConfig
	Env       string
}

type ServerConfig struct {
	Host string
	Port string
}

type WebConfig struct {
	Host string
	Port string
}

// EndpointConfig is resolved once at startup and handed to every status view.
type EndpointConfig struct {
	URL     string
	Timeout time.Duration
}

type ViewStoreConfig struct {
	Backend string
	TTL     time.Duration
}

type GreetingConfig struct {
	Message             string
	AllowedOrigins      []string
	PreviewOriginSuffix string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
		},
		Web: WebConfig{
			Host: getEnv("WEB_HOST", "0.0.0.0"),
			Port: getEnv("WEB_PORT", "3000"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Greeting: GreetingConfig{
			Message: getEnv("GREETING", "Hello!"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{
				"http://localhost:5173",
				"https://bookmarks-web-qbt.pages.dev",
			}),
			PreviewOriginSuffix: getEnv("PREVIEW_ORIGIN_SUFFIX", ".bookmarks-web-qbt.pages.dev"),
		},
		Endpoint: EndpointConfig{
			URL:     getEnv("API_URL", DefaultAPIURL),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		ViewStore: ViewStoreConfig{
			Backend: getEnv("VIEW_STORE", "memory"),
			TTL:     getEnvAsDuration("VIEW_TTL", 5*time.Minute),
		},
		Env: getEnv("ENV", "development"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) UsesRedis() bool {
	return c.ViewStore.Backend == "redis"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

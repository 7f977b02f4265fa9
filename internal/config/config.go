package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every runtime setting of the server. Values come from
// environment variables with development-friendly defaults.
type Config struct {
	// HTTP server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBConnStr  string // overrides the individual DB_* vars when set

	// Backend selection: "postgres" or "memory"
	DataBackend string

	// Auth: maps bearer tokens to owner IDs, "token1:owner1,token2:owner2"
	APITokens string

	// Advisory categorization
	AdvisorEnabled bool
	AdvisorModel   string
	AdvisorTimeout time.Duration
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "fintrack"),
		DBConnStr:  getEnv("DB_CONN_STR", ""),

		DataBackend: getEnv("DATA_BACKEND", "postgres"),

		APITokens: getEnv("API_TOKENS", "dev-token:dev-user"),

		AdvisorEnabled: getEnvBool("ADVISOR_ENABLED", false),
		AdvisorModel:   getEnv("ADVISOR_MODEL", "gemini-2.0-flash"),
		AdvisorTimeout: getEnvDuration("ADVISOR_TIMEOUT", 3*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DataBackend != "postgres" && c.DataBackend != "memory" {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be 'postgres' or 'memory'", c.DataBackend))
	}

	if _, err := c.TokenOwners(); err != nil {
		problems = append(problems, err.Error())
	}

	if c.AdvisorTimeout <= 0 {
		problems = append(problems, "advisor timeout must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ConnectionString builds the Postgres connection string
func (c *Config) ConnectionString() string {
	if c.DBConnStr != "" {
		return c.DBConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// TokenOwners parses APITokens into a token -> owner ID map
func (c *Config) TokenOwners() (map[string]string, error) {
	owners := make(map[string]string)
	if strings.TrimSpace(c.APITokens) == "" {
		return owners, nil
	}
	for _, pair := range strings.Split(c.APITokens, ",") {
		token, owner, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || token == "" || owner == "" {
			return nil, fmt.Errorf("invalid API_TOKENS entry '%s': want 'token:owner'", pair)
		}
		owners[token] = owner
	}
	return owners, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

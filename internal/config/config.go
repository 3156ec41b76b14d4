package config

import (
	"flight-itinerary-service/internal/services"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt is Get for integer settings. Unparsable values fall back.
func GetInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetDuration is Get for time.Duration settings such as "10m".
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// LoadDotEnv loads .env into the process environment. A missing file is not
// an error; the returned bool reports whether one was read.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Settings is the runtime configuration of the server and tools.
type Settings struct {
	Port          string
	DatabaseURL   string
	RedisAddr     string
	CacheBackend  string
	CacheTTL      time.Duration
	LogLevel      string
	SeedPath      string
	TimetableYear int
	SolverConfig  string
}

// FromEnv reads Settings from the environment.
func FromEnv() Settings {
	return Settings{
		Port:          Get("PORT", "8080"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		CacheBackend:  strings.ToLower(Get("CACHE_BACKEND", "none")),
		CacheTTL:      GetDuration("CACHE_TTL", 24*time.Hour),
		LogLevel:      Get("LOG_LEVEL", "info"),
		SeedPath:      Get("SEED_PATH", "data/seeds/timetable.json"),
		TimetableYear: GetInt("TIMETABLE_YEAR", 2023),
		SolverConfig:  os.Getenv("SOLVER_CONFIG"),
	}
}

// SolverConfig is the YAML document that tunes the search engine:
//
//	algorithm: branch-and-bound
//	workers: 4
//	timeout: 30s
//	max_dp_states: 4194304
type SolverConfig struct {
	Algorithm   string        `yaml:"algorithm"`
	Workers     int           `yaml:"workers"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxDPStates int64         `yaml:"max_dp_states"`
}

// DefaultSolverConfig mirrors services.DefaultOptions with a 30s timeout.
func DefaultSolverConfig() SolverConfig {
	opts := services.DefaultOptions()
	return SolverConfig{
		Algorithm:   string(opts.Algorithm),
		Workers:     opts.Workers,
		Timeout:     30 * time.Second,
		MaxDPStates: opts.MaxDPStates,
	}
}

// LoadSolverConfig reads path over the defaults. An empty path returns the defaults.
func LoadSolverConfig(path string) (SolverConfig, error) {
	cfg := DefaultSolverConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return SolverConfig{}, fmt.Errorf("load solver config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SolverConfig{}, fmt.Errorf("load solver config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SolverConfig{}, fmt.Errorf("load solver config: %w", err)
	}
	return cfg, nil
}

func (c SolverConfig) Validate() error {
	if _, err := services.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxDPStates < 0 {
		return fmt.Errorf("max_dp_states must not be negative, got %d", c.MaxDPStates)
	}
	return nil
}

// Options converts the config into search options. Call Validate first.
func (c SolverConfig) Options() services.Options {
	alg, _ := services.ParseAlgorithm(c.Algorithm)
	return services.Options{
		Algorithm:   alg,
		Workers:     c.Workers,
		MaxDPStates: c.MaxDPStates,
	}
}

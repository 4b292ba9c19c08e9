// Package config reads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmylchreest/swatch/internal/image"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// EnvPrefix is prepended to every environment variable swatch reads.
const EnvPrefix = "SWATCH_"

// Server holds settings for `swatch serve`.
type Server struct {
	Addr           string
	FetchTimeout   time.Duration
	MaxImageBytes  int64
	MaxPixels      int64
	CacheDir       string
	AllowedOrigins []string
	ShutdownGrace  time.Duration

	// AllowPrivateHosts permits image URLs on loopback and private networks.
	AllowPrivateHosts bool
}

// DefaultServer returns the settings used when nothing is configured.
func DefaultServer() Server {
	return Server{
		Addr:           ":8080",
		FetchTimeout:   httputil.DefaultTimeout,
		MaxImageBytes:  httputil.DefaultMaxBytes,
		MaxPixels:      image.DefaultMaxPixels,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		ShutdownGrace:  5 * time.Second,
	}
}

// LoadServer loads envFile when it exists and then reads SWATCH_* variables.
// Variables already set in the process environment take precedence over the file.
// An empty envFile means ".env".
func LoadServer(envFile string) (Server, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	def := DefaultServer()
	cfg := Server{
		Addr:           getEnv("ADDR", def.Addr),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", def.FetchTimeout),
		MaxImageBytes:  getEnvInt64("MAX_IMAGE_BYTES", def.MaxImageBytes),
		MaxPixels:      getEnvInt64("MAX_IMAGE_PIXELS", def.MaxPixels),
		CacheDir:       getEnv("CACHE_DIR", def.CacheDir),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", def.AllowedOrigins),
		ShutdownGrace:  getEnvDuration("SHUTDOWN_GRACE", def.ShutdownGrace),

		AllowPrivateHosts: getEnvBool("ALLOW_PRIVATE_HOSTS", def.AllowPrivateHosts),
	}

	if cfg.FetchTimeout <= 0 {
		return Server{}, fmt.Errorf("%sFETCH_TIMEOUT must be positive, got %s", EnvPrefix, cfg.FetchTimeout)
	}
	if cfg.MaxPixels <= 0 {
		return Server{}, fmt.Errorf("%sMAX_IMAGE_PIXELS must be positive, got %d", EnvPrefix, cfg.MaxPixels)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvDuration accepts Go durations ("15s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

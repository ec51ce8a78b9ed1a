package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// S3Config holds the settings for uploading renders to S3-compatible storage
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Empty means the AWS endpoint for Region
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix for uploaded objects
}

// Enabled reports whether uploads are configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Config holds settings read from the environment
type Config struct {
	OutputDir     string // Directory for rendered images
	ScenesDir     string // Directory scanned for *.json scene files
	Workers       int    // Worker count, 0 = CPU count
	Seed          int64  // Base seed for sampling
	SeedSet       bool   // RAYTRACER_SEED was given, so Seed overrides scene files
	ThumbnailSize uint   // Longest side of the preview image, 0 disables it
	S3            S3Config
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		OutputDir: "output",
		ScenesDir: "scenes",
		Seed:      42,
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then builds a Config from the
// environment. An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables on top of Default
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.OutputDir = getEnv("RAYTRACER_OUTPUT_DIR", cfg.OutputDir)
	cfg.ScenesDir = getEnv("RAYTRACER_SCENES_DIR", cfg.ScenesDir)

	if value, ok := os.LookupEnv("RAYTRACER_WORKERS"); ok {
		workers, err := strconv.Atoi(value)
		if err != nil || workers < 0 {
			return Config{}, fmt.Errorf("RAYTRACER_WORKERS must be a non-negative integer, got %q", value)
		}
		cfg.Workers = workers
	}

	if value, ok := os.LookupEnv("RAYTRACER_SEED"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("RAYTRACER_SEED must be an integer, got %q: %w", value, err)
		}
		cfg.Seed = seed
		cfg.SeedSet = true
	}

	if value, ok := os.LookupEnv("RAYTRACER_THUMBNAIL"); ok {
		size, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("RAYTRACER_THUMBNAIL must be a non-negative integer, got %q: %w", value, err)
		}
		cfg.ThumbnailSize = uint(size)
	}

	cfg.S3 = S3Config{
		Bucket:    os.Getenv("S3_BUCKET"),
		Region:    getEnv("S3_REGION", cfg.S3.Region),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}

	return cfg, nil
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

var configVars = []string{
	"RAYTRACER_OUTPUT_DIR", "RAYTRACER_SCENES_DIR", "RAYTRACER_WORKERS", "RAYTRACER_SEED",
	"RAYTRACER_THUMBNAIL", "S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY",
	"S3_SECRET_KEY", "S3_PREFIX",
}

// clearEnv unsets every variable Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg != Default() {
		t.Errorf("Expected defaults %+v, got %+v", Default(), cfg)
	}
	if cfg.SeedSet {
		t.Error("SeedSet should be false without RAYTRACER_SEED")
	}
	if cfg.S3.Enabled() {
		t.Error("S3 should be disabled without a bucket")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAYTRACER_OUTPUT_DIR", "/tmp/renders")
	t.Setenv("RAYTRACER_WORKERS", "3")
	t.Setenv("RAYTRACER_SEED", "-7")
	t.Setenv("RAYTRACER_THUMBNAIL", "128")
	t.Setenv("S3_BUCKET", "renders")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "/tmp/renders" || cfg.Workers != 3 || cfg.Seed != -7 || !cfg.SeedSet || cfg.ThumbnailSize != 128 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if !cfg.S3.Enabled() || cfg.S3.Bucket != "renders" || cfg.S3.Endpoint != "http://localhost:9000" {
		t.Errorf("Unexpected S3 config %+v", cfg.S3)
	}
	if cfg.S3.Region != "us-east-1" {
		t.Errorf("Expected default region, got %q", cfg.S3.Region)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "S3_BUCKET=from-file\nS3_PREFIX=previews\nRAYTRACER_WORKERS=2\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	// Variables already in the environment win over the file
	t.Setenv("RAYTRACER_WORKERS", "6")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.S3.Bucket != "from-file" || cfg.S3.Prefix != "previews" {
		t.Errorf("Env file values not applied: %+v", cfg.S3)
	}
	if cfg.Workers != 6 {
		t.Errorf("Expected environment to override the file, got %d workers", cfg.Workers)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"RAYTRACER_WORKERS", "many"},
		{"RAYTRACER_WORKERS", "-1"},
		{"RAYTRACER_SEED", "1.5"},
		{"RAYTRACER_THUMBNAIL", "-20"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(""); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

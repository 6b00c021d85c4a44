package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/joho/godotenv"
)

// projectRoot walks up from this file until it finds go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("Could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

// GetEnv returns an environment variable, loading the project .env file when present.
// Tests that depend on external services are skipped when the variable is unset.
func GetEnv(t *testing.T, key string) string {
	t.Helper()

	envFile := filepath.Join(projectRoot(), ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			t.Fatalf("Error loading .env file: %v", err)
		}
	}

	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s is not set", key)
	}
	return value
}

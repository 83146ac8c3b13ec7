package utils_test

import (
	"os"
	"testing"
	"time"

	"github.com/sinasezza/todolist-api/internal/utils"

	"github.com/gofrs/uuid"
)

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_ENV_VAR", "test_value")
	defer os.Unsetenv("TEST_ENV_VAR")

	if got := utils.GetEnv("TEST_ENV_VAR", "default"); got != "test_value" {
		t.Errorf("Expected test_value, got %s", got)
	}

	os.Unsetenv("MISSING_ENV_VAR")
	if got := utils.GetEnv("MISSING_ENV_VAR", "default"); got != "default" {
		t.Errorf("Expected default, got %s", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT_VAR", "42")
	defer os.Unsetenv("TEST_INT_VAR")

	if got := utils.GetEnvAsInt("TEST_INT_VAR", 0); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	os.Setenv("TEST_INT_VAR", "not_an_integer")
	if got := utils.GetEnvAsInt("TEST_INT_VAR", 10); got != 10 {
		t.Errorf("Expected fallback 10 for invalid integer, got %d", got)
	}

	os.Unsetenv("MISSING_INT_VAR")
	if got := utils.GetEnvAsInt("MISSING_INT_VAR", 5); got != 5 {
		t.Errorf("Expected fallback 5, got %d", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	os.Setenv("TEST_BOOL_VAR", "true")
	defer os.Unsetenv("TEST_BOOL_VAR")

	if !utils.GetEnvAsBool("TEST_BOOL_VAR", false) {
		t.Error("Expected true")
	}

	os.Setenv("TEST_BOOL_VAR", "not_a_bool")
	if utils.GetEnvAsBool("TEST_BOOL_VAR", false) {
		t.Error("Expected fallback false for invalid bool")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION_VAR", "30s")
	defer os.Unsetenv("TEST_DURATION_VAR")

	if got := utils.GetEnvAsDuration("TEST_DURATION_VAR", 0); got != 30*time.Second {
		t.Errorf("Expected 30s, got %v", got)
	}

	os.Setenv("TEST_DURATION_VAR", "invalid")
	if got := utils.GetEnvAsDuration("TEST_DURATION_VAR", time.Minute); got != time.Minute {
		t.Errorf("Expected fallback 1m for invalid duration, got %v", got)
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := uuid.Must(uuid.NewV4()).String()
	if !utils.IsValidUUID(valid) {
		t.Errorf("Expected %s to be a valid UUID", valid)
	}

	for _, invalid := range []string{"", "invalid-uuid", "123-456-789"} {
		if utils.IsValidUUID(invalid) {
			t.Errorf("Expected %q to be rejected", invalid)
		}
	}
}

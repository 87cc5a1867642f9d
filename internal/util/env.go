package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// OverrideString replaces *target with the variable's value when it is set.
func OverrideString(target *string, key string) {
	*target = EnvOrDefault(key, *target)
}

// OverrideInt replaces *target with the variable parsed as an integer.
func OverrideInt(target *int, key string) error {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = n
	return nil
}

// OverrideBool replaces *target with the variable parsed as a boolean.
func OverrideBool(target *bool, key string) error {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = b
	return nil
}

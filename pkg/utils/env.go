package utils

import (
	"os"
	"strconv"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt is Getenv for integer settings. Unparsable values fall back as well.
func GetenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		LogWarn("Ignoring malformed integer environment variable", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return n
}

// GetenvDuration reads durations in time.ParseDuration syntax, e.g. "30m".
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		LogWarn("Ignoring malformed duration environment variable", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return d
}

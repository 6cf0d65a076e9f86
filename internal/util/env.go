package util

import (
	"os"
	"strconv"
	"time"
)

func GetEnvDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt64 falls back to defaultValue when key is unset or not a number.
func GetEnvInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(GetEnvDefault(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(GetEnvDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

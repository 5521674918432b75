package config

import "os"

// Get reads an environment variable with a fallback for local runs.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

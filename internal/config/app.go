package config

import (
	"os"
	"strings"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return "8080"
	}
	return port
}

func Addr() string {
	return ":" + Port()
}

// AllowedOrigins lists CORS_ALLOWED_ORIGINS, comma separated. Empty means
// any origin.
func AllowedOrigins() []string {
	return splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

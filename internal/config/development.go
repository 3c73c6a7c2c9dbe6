package config

import "os"

// Development turns on debug logging.
func Development() bool {
	development := os.Getenv("DEVELOPMENT")
	return development != "" && development != "0"
}

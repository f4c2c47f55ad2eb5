package version

import (
	"os"
	"strings"
)

// Current returns the running build version, taken from the APP_VERSION
// environment variable set by the deploy pipeline.
func Current() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}

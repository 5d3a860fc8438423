package main

import (
	"os"
	"strings"
)

func envFlagEnabled(name string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func debugLoggingEnabled() bool {
	return envFlagEnabled("SELECT_BRANCH_DEBUG")
}

func testModeEnabled() bool {
	return envFlagEnabled("SELECT_BRANCH_TEST_MODE")
}

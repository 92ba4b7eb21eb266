package main

import (
	"os"

	"github.com/studyhub/auth-service/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

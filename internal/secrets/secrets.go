// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API keys for the rewrite backends. Keys live in
// the process environment, optionally seeded from a .env file in the
// working directory. Keys are resolved before any pipeline work starts so a
// missing credential fails fast instead of after extraction.
package secrets

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jmcdice/plainify/pkg/types"
)

// envVars maps each rewrite backend to the environment variable holding its
// API key.
var envVars = map[types.RewriteBackend]string{
	types.RewriteClaude: "ANTHROPIC_API_KEY",
	types.RewriteOpenAI: "OPENAI_API_KEY",
}

// LoadDotenv seeds the process environment from the file at path without
// overriding variables that are already set. A missing file is not an
// error; most setups export keys directly.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Resolve returns the trimmed API key for backend from the environment. An
// empty backend resolves the claude key.
func Resolve(backend types.RewriteBackend) (string, error) {
	if backend == "" {
		backend = types.RewriteClaude
	}

	envVar, ok := envVars[backend]
	if !ok {
		return "", fmt.Errorf("unknown rewrite backend %q", backend)
	}

	key := strings.TrimSpace(os.Getenv(envVar))
	if key == "" {
		return "", fmt.Errorf("%s is not set; export it or add it to .env", envVar)
	}
	return key, nil
}

// EnvVar returns the environment variable consulted for backend's API key,
// for help text and error messages.
func EnvVar(backend types.RewriteBackend) string {
	return envVars[backend]
}

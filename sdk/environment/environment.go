// Package environment loads configuration from environment variables, with
// optional namespacing and .env file support.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file in the working directory. A missing
// file is not an error; local development is the only place one is expected.
//
// Example:
//
//	if err := environment.LoadEnv(); err != nil {
//	    log.Printf("reading .env: %v", err)
//	}
func LoadEnv() error {
	return LoadPath("")
}

// LoadPath loads variables from the .env file at p, or from ./.env when p is
// empty. Variables already present in the process environment win.
func LoadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// GetEnvOrDefault retrieves an environment variable value, returning fallback
// when the variable is not set.
//
//	port := GetEnvOrDefault("PORT", "3000")
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetNamespaceEnvKey joins a namespace and a key with an underscore. An empty
// namespace returns the key unchanged.
//
//	GetNamespaceEnvKey("TASKS", "PORT") // "TASKS_PORT"
//	GetNamespaceEnvKey("", "PORT")      // "PORT"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}

// GetNamespaceEnvOrDefault retrieves a namespaced environment variable value,
// returning fallback when it is not set.
func GetNamespaceEnvOrDefault(namespace, key, fallback string) string {
	return GetEnvOrDefault(GetNamespaceEnvKey(namespace, key), fallback)
}

// GetNamespaceEnvValue retrieves a namespaced environment variable. It cannot
// tell an unset variable from an empty one; use os.LookupEnv for that.
func GetNamespaceEnvValue(namespace, key string) string {
	return os.Getenv(GetNamespaceEnvKey(namespace, key))
}

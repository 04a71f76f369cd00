package env

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// First check our loaded Env map
	if val, ok := Env[key]; ok {
		return val
	}
	// Fallback to OS environment variables (for Docker/tests)
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func SetupEnvFile() {
	// Look for .env file in project root
	envFiles := []string{
		".env",          // Current directory
		"../../.env",    // From cmd/dashboard to project root
		"../../../.env", // Fallback for deeper nesting
	}

	var err error
	for _, envFile := range envFiles {
		Env, err = godotenv.Read(envFile)
		if err == nil {
			return
		}
	}

	// Containers inject configuration through the process environment.
	Env = map[string]string{}
	log.Warnf("[Env] No .env file found, using process environment only")
}

// Parse fills a struct tagged with `env:"..."` from the loaded .env map,
// falling back to the process environment for keys the file does not set.
func Parse(v any) error {
	merged := make(map[string]string, len(Env))
	for _, kv := range os.Environ() {
		if k, val, ok := strings.Cut(kv, "="); ok {
			merged[k] = val
		}
	}
	for k, val := range Env {
		merged[k] = val
	}
	return env.ParseWithOptions(v, env.Options{Environment: merged})
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}

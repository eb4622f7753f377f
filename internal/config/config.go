package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv" // godotenv reads an optional .env file into the process environment
)

// Defaults applied when the corresponding environment variable is unset.
const (
	defaultEnv  = "dev"
	defaultPort = "3000"
)

// fatalf reports an unusable configuration value and halts the process.
// It is a variable so tests can intercept the fatal path.
var fatalf = log.Fatalf

// Config holds all runtime configuration values.  The service is
// deliberately small: one port to listen on and an environment label
// that only decorates the startup log line.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on
}

// Load reads configuration from the environment and returns a Config.
// A .env file in the working directory is loaded first when present;
// values already set in the real environment always win.  An APP_PORT
// that is not a valid TCP port terminates the process with a fatal
// log message, the same startup-failure class as a bind error.
func Load() Config {
	_ = godotenv.Load() // missing .env is fine; the environment is authoritative

	cfg := Config{
		Env:  getenv("APP_ENV", defaultEnv),
		Port: getenv("APP_PORT", defaultPort),
	}

	if n, err := strconv.Atoi(cfg.Port); err != nil || n < 1 || n > 65535 {
		fatalf("invalid APP_PORT %q: want an integer between 1 and 65535", cfg.Port)
	}
	return cfg
}

// getenv returns the value of an environment variable, or def when the
// variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// First check our loaded Env map
	if val, ok := Env[key]; ok && val != "" {
		return val
	}
	// Fallback to OS environment variables (for Docker/tests)
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file found. Containers usually inject
// variables directly, so a missing file only falls back to the process env.
func SetupEnvFile() {
	envFiles := []string{
		".env",          // Current directory
		"../../.env",    // From cmd/studio to project root
		"../../../.env", // Fallback for deeper nesting
	}

	var err error
	for _, envFile := range envFiles {
		Env, err = godotenv.Read(envFile)
		if err == nil {
			return
		}
	}

	Env = map[string]string{}
	log.Printf("no .env file found, using process environment only")
}

// AppEnv returns the normalized application environment.
func AppEnv() string {
	switch v := GetEnv("APP_ENV", "development"); v {
	case "dev":
		return "development"
	case "prod":
		return "production"
	default:
		return v
	}
}

func IsDev() bool {
	return AppEnv() == "development"
}

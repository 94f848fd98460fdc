package env

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

// Values read from the .env file. Populated once by SetupEnvFile and read-only afterwards.
var Env map[string]string

// GetEnv returns the value from the .env file, then the process environment, then def.
func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok && strings.TrimSpace(val) != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file it finds. A missing file is not an error:
// containers usually pass configuration through the process environment only.
func SetupEnvFile() {
	envFiles := []string{
		".env",          // Current directory
		"../../.env",    // From cmd/paybridge to project root
		"../../../.env", // Fallback for deeper nesting
	}

	for _, envFile := range envFiles {
		values, err := godotenv.Read(envFile)
		if err == nil {
			Env = values
			log.Infof("[Env] Loaded %s", envFile)
			return
		}
	}

	log.Info("[Env] No .env file found, using process environment")
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}

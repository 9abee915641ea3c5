package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/task-tracker/internal/constants"
)

type Config struct {
	// Client side
	ServerURL      string
	RequestTimeout time.Duration
	AppName        string
	AppVersion     string
	StrictDueDates bool

	// Reference backend
	Port           string
	GinMode        string
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPath         string
	DBReset        bool
	AllowedOrigins []string
}

// Load reads .env (if present) and the process environment
func Load() *Config {
	_ = godotenv.Load(".env")

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))

	return &Config{
		ServerURL:      strings.TrimRight(getEnv("TASK_API_SERVER_URL", constants.DefaultServerURL), "/"),
		RequestTimeout: constants.RequestTimeout,
		AppName:        getEnv("APP_NAME", constants.DefaultAppName),
		AppVersion:     constants.AppVersion,
		StrictDueDates: getEnvBool("TASK_STRICT_DUE_DATES", false),

		Port:           getEnv("PORT", "9090"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		DBDriver:       driver,
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", defaultDBPort(driver)),
		DBUser:         getEnv("DB_USER", "taskuser"),
		DBPassword:     getEnv("DB_PASSWORD", "taskpassword"),
		DBName:         getEnv("DB_NAME", "task_management"),
		DBPath:         getEnv("DB_PATH", "tasks.db"),
		DBReset:        getEnvBool("DB_RESET", false),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
	}
}

// APIBaseURL is the server URL joined with the /api prefix
func (c *Config) APIBaseURL() string {
	return c.ServerURL + constants.APIBasePath
}

func defaultDBPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

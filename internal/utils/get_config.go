package utils

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Logging and error exposure
	LogLevel           string `yaml:"LOG_LEVEL"`
	LogFormat          string `yaml:"LOG_FORMAT"`
	ExposeErrorDetails bool   `yaml:"EXPOSE_ERROR_DETAILS"`

	RateLimitPerSecond int `yaml:"RATE_LIMIT_PER_SECOND"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:            "8080",
		DBDriver:           "postgres",
		DBPort:             "5432",
		DBSSLMode:          "disable",
		DBTimeZone:         "UTC",
		LogLevel:           "info",
		LogFormat:          "json",
		RateLimitPerSecond: 20,
	}
}

// LoadConfig reads config.yaml from the working directory. A missing file is not fatal:
// defaults and environment variables still apply.
func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

func LoadConfigFrom(path string) {
	cfg := defaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &cfg); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		cfg = defaultConfig()
	}

	config = cfg
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// GetConfig returns the value for key, preferring a non-empty environment variable of the
// same name over the YAML value.
func GetConfig(key string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "DB_TIMEZONE":
		return config.DBTimeZone
	case "JWT_SECRET":
		return config.JWTSecret
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "EXPOSE_ERROR_DETAILS":
		return getBoolString(config.ExposeErrorDetails)
	case "RATE_LIMIT_PER_SECOND":
		return strconv.Itoa(config.RateLimitPerSecond)
	default:
		return ""
	}
}

func GetConfigBool(key string) bool {
	val, err := strconv.ParseBool(GetConfig(key))
	return err == nil && val
}

func GetConfigInt(key string, def int) int {
	val, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return def
	}
	return val
}

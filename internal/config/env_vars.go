package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	apiBaseURLVar = "API_BASE_URL"
	appNameVar    = "APP_NAME"
	issuerURLVar  = "ISSUER_URL"
	clientIDVar   = "CLIENT_ID"
)

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetAPIBaseURL returns the base URL of the school-management backend
// (e.g. "https://api.classpoint.example"). All client paths are resolved
// against it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:3000")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "ClassPoint Client")
}

// GetIssuerURL returns the OIDC issuer used for server-side token refresh.
func (EnvVars) GetIssuerURL() string {
	return GetEnv(issuerURLVar, "http://localhost:8080")
}

func (EnvVars) GetClientID() string {
	return GetEnv(clientIDVar, "classpoint-client")
}

func (EnvVars) GetClientSecret() string {
	return GetEnv("CLIENT_SECRET", "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// loadDotEnv loads a .env file for the current environment if one exists.
// Missing files are not an error; real deployments set variables directly.
func loadDotEnv() {
	env := strings.ToLower(EnvVars{}.GetEnv())
	dotEnvPath := filepath.Join(".", ".env."+env)
	if _, err := os.Stat(dotEnvPath); err == nil {
		_ = godotenv.Load(dotEnvPath)
	}
}

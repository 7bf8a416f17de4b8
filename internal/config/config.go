package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends accepted by LEADS_STORE.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StoreS3       = "s3"
	StorePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Lead form
	LeadsWebhookURL     string
	LeadsWebhookTimeout time.Duration
	LeadsStore          string
	LeadsStoreKey       string
	LeadsFileDir        string
	FormRateLimitRPS    float64
	FormRateLimitBurst  int
	CORSAllowedOrigins  []string

	// Redis backend
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// AWS (S3 backend, SES alerts)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	LeadsS3Bucket       string

	// Postgres backend
	DatabaseURL string

	// Fallback alerts
	SalesEmail        string
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LeadsWebhookURL:     getEnv("LEADS_WEBHOOK_URL", "http://localhost:8080/api/leads"),
		LeadsWebhookTimeout: getEnvAsDuration("LEADS_WEBHOOK_TIMEOUT", 0),
		LeadsStore:          strings.ToLower(strings.TrimSpace(getEnv("LEADS_STORE", StoreMemory))),
		LeadsStoreKey:       getEnv("LEADS_STORE_KEY", "rollerup_leads"),
		LeadsFileDir:        getEnv("LEADS_FILE_DIR", "./data"),
		FormRateLimitRPS:    getEnvAsFloat("FORM_RATE_LIMIT_RPS", 1),
		FormRateLimitBurst:  getEnvAsInt("FORM_RATE_LIMIT_BURST", 5),
		CORSAllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS"),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		LeadsS3Bucket:       getEnv("LEADS_S3_BUCKET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SalesEmail:        getEnv("SALES_EMAIL", "sales@rollerup.com"),
		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Roller Up"),
	}
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration (local development REST surface)
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion    string
	EventBusName string

	// DynamoDB tables
	AccountsTable  string
	ProfilesTable  string
	SharesTable    string
	CampaignsTable string
	OrdersTable    string
	CatalogsTable  string
	InvitesTable   string

	// DynamoDB indexes
	ProfileIDIndexName string // GSI on the profiles table for id-only lookups
	OwnerIndexName     string // GSI on the catalogs table for owner queries

	// Identity provider
	UserPoolID string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Logging
	LogLevel string

	// Authentication (local development REST surface only; AppSync validates
	// tokens before invoking the resolver)
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool

	// Rate limiting for the development REST surface; 0 disables it.
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "kernelworx-events"),

		AccountsTable:  getEnv("ACCOUNTS_TABLE", "kernelworx-accounts"),
		ProfilesTable:  getEnv("PROFILES_TABLE", "kernelworx-profiles"),
		SharesTable:    getEnv("SHARES_TABLE", "kernelworx-shares"),
		CampaignsTable: getEnv("CAMPAIGNS_TABLE", "kernelworx-campaigns"),
		OrdersTable:    getEnv("ORDERS_TABLE", "kernelworx-orders"),
		CatalogsTable:  getEnv("CATALOGS_TABLE", "kernelworx-catalogs"),
		InvitesTable:   getEnv("INVITES_TABLE", "kernelworx-invites"),

		ProfileIDIndexName: getEnv("PROFILE_ID_INDEX_NAME", "profileId-index"),
		OwnerIndexName:     getEnv("OWNER_INDEX_NAME", "ownerAccountId-index"),

		UserPoolID: getEnv("USER_POOL_ID", ""),

		// Lambda configuration
		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "kernelworx-backend"),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 300),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.UserPoolID == "" {
			return fmt.Errorf("USER_POOL_ID is required in production")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
	}
	if !c.IsLambda && c.Environment == "production" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when serving HTTP in production")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

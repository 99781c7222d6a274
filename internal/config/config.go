package config

import (
	"time"

	"github.com/camp-aid/campaid-backend/internal/config/environment"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	Reconcile ReconcileConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI       string
	Database  string
	OpTimeout time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// PaymentConfig holds payment gateway configuration
type PaymentConfig struct {
	GatewayURL  string
	APIKey      string
	Currency    string
	MockGateway bool
}

// ReconcileConfig holds participant-counter reconciliation configuration.
// Interval 0 disables the periodic pass; the admin endpoint still works.
type ReconcileConfig struct {
	Interval time.Duration
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Deployment platforms inject these as plain env vars; they win over
	// the config file.
	config.Server.Port = environment.GetEnv("PORT", config.Server.Port)
	config.MongoDB.URI = environment.GetEnv("MONGODB_URI", config.MongoDB.URI)
	config.JWT.Secret = environment.GetEnv("JWT_SECRET", config.JWT.Secret)
	config.JWT.ExpiresIn = environment.GetEnvAsInt("JWT_EXPIRES_IN", config.JWT.ExpiresIn)
	config.Payment.APIKey = environment.GetEnv("PAYMENT_API_KEY", config.Payment.APIKey)
	config.Payment.MockGateway = environment.GetEnvAsBool("PAYMENT_MOCK_GATEWAY", config.Payment.MockGateway)

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "5000")
	viper.SetDefault("Server.AllowedHosts", []string{"http://localhost:5173"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "campaid")
	viper.SetDefault("MongoDB.OpTimeout", "10s")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Payment.Currency", "usd")
	viper.SetDefault("Payment.MockGateway", true)
	viper.SetDefault("Reconcile.Interval", "0s")
	viper.SetDefault("LogLevel", "info")
}

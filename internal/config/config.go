package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/Akanael21/FriendlyBanks/internal/engine"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Business  BusinessConfig  `mapstructure:"business"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"DATABASE_HOST"`
	Port         string `mapstructure:"DATABASE_PORT"`
	Name         string `mapstructure:"DATABASE_NAME"`
	User         string `mapstructure:"DATABASE_USER"`
	Password     string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode      string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	CacheTTL string `mapstructure:"REDIS_CACHE_TTL"`
}

type SchedulerConfig struct {
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

// AuthConfig maps opaque bearer tokens to identities. Token issuance and
// refresh live in the external identity collaborator; this service only
// resolves a presented token to a role and member id.
type AuthConfig struct {
	// Tokens is "token:role:memberID" triples separated by commas, e.g.
	// "s3cret:admin:1,m3mber:member:5".
	Tokens string `mapstructure:"AUTH_TOKENS"`
}

// TokenIdentity is the identity a bearer token resolves to.
type TokenIdentity struct {
	Role     string
	MemberID int64
}

type BusinessConfig struct {
	ContributionMinimum   string `mapstructure:"CONTRIBUTION_MINIMUM"`
	ContributionDueDay    int    `mapstructure:"CONTRIBUTION_DUE_DAY"`
	LateFeePerDay         string `mapstructure:"LATE_FEE_PER_DAY"`
	BonusThreshold        string `mapstructure:"BONUS_THRESHOLD"`
	LoanTermMonths        int    `mapstructure:"LOAN_TERM_MONTHS"`
	MinimumPaymentPercent int    `mapstructure:"MINIMUM_PAYMENT_PERCENT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "friendlybanks")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "15m")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Africa/Douala")
	viper.SetDefault("CONTRIBUTION_MINIMUM", "4000")
	viper.SetDefault("CONTRIBUTION_DUE_DAY", 25)
	viper.SetDefault("LATE_FEE_PER_DAY", "200")
	viper.SetDefault("BONUS_THRESHOLD", "6800")
	viper.SetDefault("LOAN_TERM_MONTHS", 6)
	viper.SetDefault("MINIMUM_PAYMENT_PERCENT", 10)

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Business.ContributionDueDay < 1 || c.Business.ContributionDueDay > 28 {
		return fmt.Errorf("CONTRIBUTION_DUE_DAY must be between 1 and 28")
	}

	if c.Business.MinimumPaymentPercent <= 0 || c.Business.MinimumPaymentPercent > 100 {
		return fmt.Errorf("MINIMUM_PAYMENT_PERCENT must be between 1 and 100")
	}

	if c.Business.LoanTermMonths <= 0 {
		return fmt.Errorf("LOAN_TERM_MONTHS must be greater than 0")
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"CONTRIBUTION_MINIMUM", c.Business.ContributionMinimum},
		{"LATE_FEE_PER_DAY", c.Business.LateFeePerDay},
		{"BONUS_THRESHOLD", c.Business.BonusThreshold},
	} {
		if _, err := decimal.NewFromString(field.value); err != nil {
			return fmt.Errorf("%s must be a valid decimal: %w", field.name, err)
		}
	}

	if _, err := time.ParseDuration(c.Redis.CacheTTL); err != nil {
		return fmt.Errorf("REDIS_CACHE_TTL must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN returns the Postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ContributionPolicy returns the configured contribution policy constants
func (c *Config) ContributionPolicy() engine.ContributionPolicy {
	minimum, _ := decimal.NewFromString(c.Business.ContributionMinimum)
	lateFee, _ := decimal.NewFromString(c.Business.LateFeePerDay)
	bonus, _ := decimal.NewFromString(c.Business.BonusThreshold)

	return engine.ContributionPolicy{
		Minimum:        minimum,
		DueDay:         c.Business.ContributionDueDay,
		LateFeePerDay:  lateFee,
		BonusThreshold: bonus,
	}
}

// TokenIdentities parses AUTH_TOKENS into a token -> identity map
func (c *AuthConfig) TokenIdentities() map[string]TokenIdentity {
	identities := make(map[string]TokenIdentity)
	for _, entry := range strings.Split(c.Tokens, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			continue
		}
		memberID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		identities[parts[0]] = TokenIdentity{Role: parts[1], MemberID: memberID}
	}
	return identities
}

// CacheTTL returns the redis cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Redis.CacheTTL)
	return ttl
}

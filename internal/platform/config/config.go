package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pranavkm07/finance_plan_app/internal/utils"
)

// Storage backend selectors.
const (
	StorageFile  = "file"
	StoragePgsql = "pgsql"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Plan persistence
	StorageBackend string // "file" or "pgsql"
	DatabaseURL    string
	PlanFilePath   string

	// Auto-save behaviour
	AutoSaveDebounce time.Duration

	// Auth (single configured user)
	AuthUsername      string
	AuthPasswordHash  string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", StorageFile)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PLAN_FILE_PATH", "data/plan.json")
	viper.SetDefault("AUTOSAVE_DEBOUNCE", "1s")
	viper.SetDefault("AUTH_USERNAME", "planner")
	viper.SetDefault("AUTH_PASSWORD", "")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "finance-plan-app")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StorageBackend = viper.GetString("STORAGE_BACKEND")
	switch cfg.StorageBackend {
	case StorageFile, StoragePgsql:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %q or %q)", cfg.StorageBackend, StorageFile, StoragePgsql)
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StorageBackend == StoragePgsql && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_BACKEND=%s", StoragePgsql)
	}

	cfg.PlanFilePath = viper.GetString("PLAN_FILE_PATH")

	debounceStr := viper.GetString("AUTOSAVE_DEBOUNCE")
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		debounce = time.Second
		log.Printf("Warning: Invalid value for AUTOSAVE_DEBOUNCE ('%s'). Defaulting to %s.\n", debounceStr, debounce)
	}
	cfg.AutoSaveDebounce = debounce

	cfg.AuthUsername = viper.GetString("AUTH_USERNAME")
	cfg.AuthPasswordHash = viper.GetString("AUTH_PASSWORD_HASH")
	if cfg.AuthPasswordHash == "" {
		// Development convenience: hash a plaintext AUTH_PASSWORD at startup.
		password := viper.GetString("AUTH_PASSWORD")
		if password == "" {
			return nil, fmt.Errorf("either AUTH_PASSWORD_HASH or AUTH_PASSWORD must be set")
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash AUTH_PASSWORD: %w", err)
		}
		cfg.AuthPasswordHash = hash
		log.Println("Warning: AUTH_PASSWORD_HASH not set. Hashed AUTH_PASSWORD at startup; set the hash in production.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Providers ProvidersConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name       string
	ServerPort string
	Debug      bool
	ChurchName string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ProvidersConfig holds messaging provider credentials.
// CountryCode is the international prefix applied when normalizing
// local phone numbers that start with a leading zero.
type ProvidersConfig struct {
	CountryCode string

	TermiiAPIKey             string
	TermiiSenderID           string
	TermiiBaseURL            string
	TermiiDeviceID           string
	TermiiWhatsAppTemplateID string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string
	TwilioBaseURL        string
}

// Load loads configuration from environment variables, with .env support.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		App: AppConfig{
			Name:       getEnv("APP_NAME", "church-visitor-manager"),
			ServerPort: getEnv("SERVER_PORT", "8080"),
			Debug:      getEnvAsBool("DEBUG", false),
			ChurchName: getEnv("CHURCH_NAME", "RCCG Victory Center"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Providers: ProvidersConfig{
			CountryCode:              getEnv("DEFAULT_COUNTRY_CODE", "234"),
			TermiiAPIKey:             getEnv("TERMII_API_KEY", ""),
			TermiiSenderID:           getEnv("TERMII_SENDER_ID", "RCCGVC"),
			TermiiBaseURL:            getEnv("TERMII_BASE_URL", "https://api.ng.termii.com"),
			TermiiDeviceID:           getEnv("TERMII_DEVICE_ID", ""),
			TermiiWhatsAppTemplateID: getEnv("TERMII_WHATSAPP_TEMPLATE_ID", ""),
			TwilioAccountSID:         getEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:          getEnv("TWILIO_AUTH_TOKEN", ""),
			TwilioPhoneNumber:        getEnv("TWILIO_PHONE_NUMBER", ""),
			TwilioWhatsAppNumber:     getEnv("TWILIO_WHATSAPP_NUMBER", "whatsapp:+14155238886"),
			TwilioBaseURL:            getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store     StoreConfig
	Academy   AcademyConfig
	Advisor   AdvisorConfig
	Messaging MessagingConfig
	CORS      CORSConfig
	Log       LogConfig
}

// StoreConfig locates the single document file on disk.
type StoreConfig struct {
	DataFile string
}

// AcademyConfig carries first-run defaults and billing behaviour.
type AcademyConfig struct {
	Name              string
	MasterPassword    string
	DefaultMonthlyFee float64
	DefaultClassType  string
}

// AdvisorConfig configures the generative advisor integration.
type AdvisorConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// MessagingConfig tunes outbound WhatsApp deep links.
type MessagingConfig struct {
	CountryCode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{DataFile: v.GetString("DATA_FILE")}

	cfg.Academy = AcademyConfig{
		Name:              v.GetString("ACADEMY_NAME"),
		MasterPassword:    v.GetString("MASTER_PASSWORD"),
		DefaultMonthlyFee: v.GetFloat64("DEFAULT_MONTHLY_FEE"),
		DefaultClassType:  v.GetString("DEFAULT_CLASS_TYPE"),
	}

	cfg.Advisor = AdvisorConfig{
		APIKey:  v.GetString("GEMINI_API_KEY"),
		Model:   v.GetString("GEMINI_MODEL"),
		BaseURL: v.GetString("GEMINI_BASE_URL"),
		Timeout: parseDuration(v.GetString("ADVISOR_TIMEOUT"), 30*time.Second),
	}

	cfg.Messaging = MessagingConfig{CountryCode: v.GetString("WHATSAPP_COUNTRY_CODE")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DATA_FILE", "./data/academy.json")

	v.SetDefault("ACADEMY_NAME", "TEAM OSS ACADEMY")
	v.SetDefault("MASTER_PASSWORD", "ben150718")
	v.SetDefault("DEFAULT_MONTHLY_FEE", 150)
	v.SetDefault("DEFAULT_CLASS_TYPE", "GI")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-3-flash-preview")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ADVISOR_TIMEOUT", "30s")

	v.SetDefault("WHATSAPP_COUNTRY_CODE", "55")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

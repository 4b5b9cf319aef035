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
	Env  string
	Port int

	CORS    CORSConfig
	Log     LogConfig
	NAS     NASConfig
	Uploads UploadConfig
	Auth    AuthConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// NASConfig describes the remote file-station appliance.
type NASConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	UploadPath    string
	UploadTimeout time.Duration
	SkipTLSVerify bool
}

// UploadConfig governs local attachment storage and the upload boundary.
type UploadConfig struct {
	Dir              string
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// AuthConfig configures token issuance for the staff account endpoints.
type AuthConfig struct {
	JWTSecret  string
	Expiration time.Duration
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

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.NAS = NASConfig{
		Host:          v.GetString("NAS_HOST"),
		Port:          v.GetInt("NAS_PORT"),
		Username:      v.GetString("NAS_USERNAME"),
		Password:      v.GetString("NAS_PASSWORD"),
		UploadPath:    v.GetString("NAS_UPLOAD_PATH"),
		UploadTimeout: parseDuration(v.GetString("NAS_UPLOAD_TIMEOUT"), 60*time.Second),
		SkipTLSVerify: v.GetBool("NAS_TLS_SKIP_VERIFY"),
	}

	maxUploadSize := v.GetInt64("UPLOAD_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 10 * 1024 * 1024
	}
	cfg.Uploads = UploadConfig{
		Dir:              v.GetString("UPLOAD_DIR"),
		MaxFileSizeBytes: maxUploadSize,
		AllowedMIMEs:     splitAndTrim(v.GetString("UPLOAD_ALLOWED_MIME_TYPES")),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:  v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("NAS_HOST", "localhost")
	v.SetDefault("NAS_PORT", 5001)
	v.SetDefault("NAS_USERNAME", "")
	v.SetDefault("NAS_PASSWORD", "")
	v.SetDefault("NAS_UPLOAD_PATH", "/선납파일")
	v.SetDefault("NAS_UPLOAD_TIMEOUT", "60s")
	v.SetDefault("NAS_TLS_SKIP_VERIFY", false)

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("UPLOAD_ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/gif,application/pdf")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
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

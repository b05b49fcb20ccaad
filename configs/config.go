package config

import (
	"fmt"
	"os"
)

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

type AuthConfig struct {
	JWTSecret string
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
	VerifyBaseURL      string
}

type WhatsAppConfig struct {
	Token       string
	PhoneNumber string
	GraphURL    string
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type StorageConfig struct {
	Bucket string
}

type Config struct {
	Port            string
	FrontendURL     string
	DefaultCurrency string
	Database        DatabaseConfig
	Auth            AuthConfig
	Email           EmailConfig
	WhatsApp        WhatsAppConfig
	Google          GoogleOAuthConfig
	Storage         StorageConfig
}

func Load() Config {
	return Config{
		Port:            getEnvOrDefault("BACKEND_PORT", "5000"),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		DefaultCurrency: getEnvOrDefault("DEFAULT_CURRENCY", "PKR"),
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			User:     getEnvOrDefault("POSTGRES_USER", "test"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "test"),
			Name:     getEnvOrDefault("POSTGRES_DB", "test"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", "change-me"),
		},
		Email: EmailConfig{
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
			SenderEmail:        os.Getenv("AWS_SENDER_ADDRESS"),
			VerifyBaseURL:      getEnvOrDefault("VERIFY_BASE_URL", "http://localhost:3000"),
		},
		WhatsApp: WhatsAppConfig{
			Token:       os.Getenv("WHATS_APP_TOKEN"),
			PhoneNumber: os.Getenv("WHATS_APP_NUMBER"),
			GraphURL:    getEnvOrDefault("WHATS_APP_GRAPH_URL", "https://graph.facebook.com/v17.0"),
		},
		Google: GoogleOAuthConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		},
		Storage: StorageConfig{
			Bucket: os.Getenv("STORAGE_BUCKET"),
		},
	}
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Karachi",
		d.Host, d.User, d.Password, d.Name, d.Port,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

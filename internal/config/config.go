package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type SupabaseConfig struct {
	ProjectURL string
	AnonKey    string
	JWTSecret  string
}

type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	Region          string
	AvatarBucket    string
	PublicBaseURL   string
}

type CometChatConfig struct {
	AppID  string
	Region string
	APIKey string
}

type Config struct {
	DB_URL       string
	Port         string
	Environment  string
	ClientOrigin string
	CorsConfig   cors.Options
	Supabase     SupabaseConfig
	Storage      StorageConfig
	CometChat    CometChatConfig
	RadioAPIURL  string
	ArticAPIURL  string
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	supabaseURL := getEnv("SUPABASE_URL", "")

	return Config{
		DB_URL:       getEnv("DB_URL", ""),
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENV", "development"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		CorsConfig:   CorsConfig(),
		Supabase: SupabaseConfig{
			ProjectURL: supabaseURL,
			AnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
			JWTSecret:  getEnv("SUPABASE_JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("STORAGE_ENDPOINT", supabaseURL+"/storage/v1/s3"),
			Region:          getEnv("STORAGE_REGION", "auto"),
			AvatarBucket:    getEnv("AVATAR_BUCKET", "avatars"),
			PublicBaseURL:   getEnv("AVATAR_PUBLIC_BASE_URL", supabaseURL+"/storage/v1/object/public/avatars"),
		},
		CometChat: CometChatConfig{
			AppID:  getEnv("COMETCHAT_APP_ID", ""),
			Region: getEnv("COMETCHAT_REGION", "eu"),
			APIKey: getEnv("COMETCHAT_API_KEY", ""),
		},
		RadioAPIURL: getEnv("RADIO_API_URL", "https://de1.api.radio-browser.info"),
		ArticAPIURL: getEnv("ARTIC_API_URL", "https://api.artic.edu/api/v1"),
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://loft-app.vercel.app"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Nlu      NluConfig
	Ai       AIConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JwtSecret          string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// NluConfig tunes the understanding pipeline.
type NluConfig struct {
	ResultCacheTTL   time.Duration
	PatternCapacity  int
	WeatherCacheTTL  time.Duration
	UseRedisNluCache bool
	RemoteLLMEnabled bool
	RemoteLLMTimeout time.Duration
}

type AIConfig struct {
	LLMProvider   string // "ollama", "gemini"
	LLMModel      string // e.g. "llama3", "gemini-1.5-flash"
	OllamaBaseURL string
}

type APIKeys struct {
	GoogleGemini string
	OpenWeather  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Nlu: NluConfig{
			ResultCacheTTL:   getEnvAsDuration("NLU_CACHE_TTL", 30*time.Minute),
			PatternCapacity:  getEnvAsInt("NLU_PATTERN_CAPACITY", 100),
			WeatherCacheTTL:  getEnvAsDuration("WEATHER_CACHE_TTL", 30*time.Minute),
			UseRedisNluCache: getEnvAsBool("NLU_CACHE_REDIS", false),
			RemoteLLMEnabled: getEnvAsBool("NLU_REMOTE_LLM", false),
			RemoteLLMTimeout: getEnvAsDuration("NLU_REMOTE_LLM_TIMEOUT", 6*time.Second),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenWeather:  getEnv("OPENWEATHER_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

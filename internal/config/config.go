package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Ai       AIConfig
	Keys     APIKeys
	SMTP     SMTPConfig
	Infra    InfraConfig
	Security SecurityConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	StreamLogFilePath  string
	CorsAllowedOrigins string
	FAQCorpusPath      string
	FAQRateLimit       time.Duration
	RateLimitBackend   string // "memory" or "redis"
}

type AIConfig struct {
	LLMProvider   string // "groq" or "ollama"
	LLMModel      string
	LLMTimeout    time.Duration
	GroqBaseURL   string
	OllamaBaseURL string
}

type APIKeys struct {
	Groq string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	AlertTo    string // Volunteer inbox for high-urgency triage alerts
}

type InfraConfig struct {
	NatsURL    string
	RedisURL   string
	EventTopic string
}

type SecurityConfig struct {
	LogReadJWTSecret string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.json"),
			StreamLogFilePath:  getEnv("STREAM_LOG_FILE_PATH", "logs/query_log_stream.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			FAQCorpusPath:      getEnv("FAQ_CORPUS_PATH", ""),
			FAQRateLimit:       getEnvAsDuration("FAQ_RATE_LIMIT", 0),
			RateLimitBackend:   strings.ToLower(getEnv("RATE_LIMIT_BACKEND", "memory")),
		},
		Ai: AIConfig{
			LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
			LLMModel:      getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
			LLMTimeout:    getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Keys: APIKeys{
			Groq: getEnv("GROQ_API_KEY", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Jarurat Care Intake"),
			AlertTo:    getEnv("TRIAGE_ALERT_EMAIL", ""),
		},
		Infra: InfraConfig{
			NatsURL:    getEnv("NATS_URL", ""),
			RedisURL:   getEnv("REDIS_URL", ""),
			EventTopic: getEnv("EVENT_TOPIC", "care.events"),
		},
		Security: SecurityConfig{
			LogReadJWTSecret: getEnv("LOG_READ_JWT_SECRET", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "care-intake-be"),
		},
	}
}

// AlertsEnabled reports whether high-urgency alert mail is configured.
func (c SMTPConfig) AlertsEnabled() bool {
	return c.Host != "" && c.AlertTo != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
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
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil && value >= 0 {
		return value
	}
	log.Printf("[WARN] invalid duration %q for %s, using %s", strValue, key, fallback)
	return fallback
}

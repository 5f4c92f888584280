package config

import (
	"fmt"
	"os"
	"strconv"
)

// Provider identifies which completion backend to use.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	HTTPAddr     string
	LogMode      string
	JWTSecret    string

	// LLM Config
	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string

	// Weekly budget fallback when neither the request nor the profile carries one.
	DefaultWeeklyBudget float64
}

// DatabasePathFromEnv resolves the database path on its own, for tools that
// touch storage without needing auth or LLM credentials.
func DatabasePathFromEnv() string {
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		return path
	}
	return "data/nutriplan.db"
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	databasePath := DatabasePathFromEnv()

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = ProviderGemini
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	openAIAPIKey := os.Getenv("OPENAI_API_KEY")

	switch provider {
	case ProviderGemini:
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderOpenAI:
		if openAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-1.5-flash"
	}

	openAIModel := os.Getenv("OPENAI_MODEL")
	if openAIModel == "" {
		openAIModel = "gpt-4o-mini"
	}

	openAIURL := os.Getenv("OPENAI_BASE_URL")
	if openAIURL == "" {
		openAIURL = "https://api.openai.com/v1/chat/completions"
	}

	defaultBudget := 100.0
	if raw := os.Getenv("DEFAULT_WEEKLY_BUDGET"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEFAULT_WEEKLY_BUDGET %q: %w", raw, err)
		}
		defaultBudget = parsed
	}

	return &Config{
		DatabasePath:        databasePath,
		HTTPAddr:            httpAddr,
		LogMode:             os.Getenv("LOG_MODE"),
		JWTSecret:           jwtSecret,
		LLMProvider:         provider,
		GeminiAPIKey:        geminiAPIKey,
		GeminiModel:         geminiModel,
		OpenAIAPIKey:        openAIAPIKey,
		OpenAIModel:         openAIModel,
		OpenAIURL:           openAIURL,
		DefaultWeeklyBudget: defaultBudget,
	}, nil
}

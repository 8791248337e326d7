package config

import (
	"fmt"
	"os"
)

type GeminiConfig struct {
	ApiUrl string
	ApiKey string
}

func GetGeminiConfig() (*GeminiConfig, error) {
	apiUrl := os.Getenv("GEMINI_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("GEMINI_API_URL must be set")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	return &GeminiConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
	}, nil
}

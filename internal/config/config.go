package config

import (
	"os"
)

type Config struct {
	DBUrl            string
	JWTSecret        string
	GrammarAPIURL    string
	NotifyWebhookURL string
	AWSBucket        string
	AWSRegion        string
}

func LoadConfig() *Config {
	return &Config{
		DBUrl:            os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GrammarAPIURL:    os.Getenv("GRAMMAR_API_URL"),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		AWSBucket:        os.Getenv("AWS_BUCKET_NAME"),
		AWSRegion:        os.Getenv("AWS_REGION"),
	}
}

package config

import "os"

// TokenPlaceholder is the value shipped in .env.example; a token equal to it
// is treated the same as a missing one.
const TokenPlaceholder = "your_facebook_page_access_token_here"

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	PostgresURI          string
	Port                 string
	FacebookAccessToken  string
	FacebookGraphBaseURL string
	WebhookAPIKey        string
	FrontendURL          string
	R2                   R2
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:          getEnv("POSTGRES_URI", ""),
		Port:                 getEnv("PORT", "3000"),
		FacebookAccessToken:  getEnv("FACEBOOK_ACCESS_TOKEN", ""),
		FacebookGraphBaseURL: getEnv("FACEBOOK_GRAPH_BASE_URL", "https://graph.facebook.com"),
		WebhookAPIKey:        getEnv("WEBHOOK_API_KEY", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
	}
}

// FacebookConfigured reports whether a usable page access token is present.
func (c *Config) FacebookConfigured() bool {
	return c.FacebookAccessToken != "" && c.FacebookAccessToken != TokenPlaceholder
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

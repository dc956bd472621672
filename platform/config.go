package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment once at startup.
type Config struct {
	Port       string `envconfig:"PORT" default:"8080"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost"`
	LogPath    string `envconfig:"LOG_PATH" default:"./log"`
	UploadDir  string `envconfig:"UPLOAD_DIR" default:"./uploads"`

	SQLDriver   string `envconfig:"SQL_DRIVER" default:"mysql"`
	SQLHost     string `envconfig:"SQL_HOST" default:"127.0.0.1"`
	SQLPort     string `envconfig:"SQL_PORT" default:"3306"`
	SQLUser     string `envconfig:"SQL_USER" default:"root"`
	SQLPassword string `envconfig:"SQL_PASSWORD"`
	SQLDBName   string `envconfig:"SQL_DBNAME" default:"medchat"`

	OpenAIAPIKey string        `envconfig:"OPENAI_API_KEY"`
	LLMBaseURL   string        `envconfig:"LLM_BASE_URL"`
	GeminiAPIKey string        `envconfig:"GEMINI_API_KEY"`
	LLMTimeout   time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.SQLDriver)) {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("SQL_DRIVER must be mysql or postgres, got %q", c.SQLDriver)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be > 0")
	}
	return nil
}

package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type TeamConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		SessionID    string       `yaml:"session_id"`
		AnswerWindow string       `yaml:"answer_window"`
		QuestionSet  string       `yaml:"question_set"`
		BankTTL      string       `yaml:"bank_ttl"`
		Teams        []TeamConfig `yaml:"teams"`
	} `yaml:"quiz"`
	AI struct {
		// Provider is "openai" or "bank"; empty picks openai when an api key is set.
		Provider   string `yaml:"provider"`
		APIKey     string `yaml:"api_key"`
		BaseURL    string `yaml:"base_url"`
		Model      string `yaml:"model"`
		ImageModel string `yaml:"image_model"`
	} `yaml:"ai"`
	Admin struct {
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console or json
	} `yaml:"log"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file yields an env-only config.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides file values with the process environment.
func (c *Config) ApplyEnv() {
	if raw := os.Getenv("PORT"); raw != "" {
		c.Server.Port = raw
	}
	if raw := os.Getenv("REDIS_ADDR"); raw != "" {
		c.Redis.Addr = raw
	}
	if raw := os.Getenv("REDIS_PASSWORD"); raw != "" {
		c.Redis.Password = raw
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			c.Redis.DB = value
		}
	}
	if raw := os.Getenv("POSTGRES_URL"); raw != "" {
		c.Postgres.URL = raw
	}
	if raw := os.Getenv("AI_PROVIDER"); raw != "" {
		c.AI.Provider = raw
	}
	if raw := os.Getenv("OPENAI_API_KEY"); raw != "" {
		c.AI.APIKey = raw
	}
	if raw := os.Getenv("OPENAI_BASE_URL"); raw != "" {
		c.AI.BaseURL = raw
	}
	if raw := os.Getenv("OPENAI_MODEL"); raw != "" {
		c.AI.Model = raw
	}
	if raw := os.Getenv("ADMIN_USER"); raw != "" {
		c.Admin.User = raw
	}
	if raw := os.Getenv("ADMIN_PASSWORD"); raw != "" {
		c.Admin.Password = raw
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		c.Log.Level = raw
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

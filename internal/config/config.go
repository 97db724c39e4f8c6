package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	AccessTTLMin  int    `yaml:"access_ttl_minutes"`
	RefreshTTLDay int    `yaml:"refresh_ttl_days"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	// requests allowed per window, per client IP
	RateLimit      int `yaml:"rate_limit"`
	RateWindowSecs int `yaml:"rate_window_seconds"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth  AuthConfig  `yaml:"auth"`
	Redis RedisConfig `yaml:"redis"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// LoadConfig reads config/config.yaml when present and applies
// environment overrides on top, so the service also runs from a bare
// .env in containers.
func LoadConfig() *Config {
	cfg := &Config{}

	if f, err := os.Open("config/config.yaml"); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			panic("Failed to parse config.yaml: " + err.Error())
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Auth.AccessTTLMin == 0 {
		cfg.Auth.AccessTTLMin = 15
	}
	if cfg.Auth.RefreshTTLDay == 0 {
		cfg.Auth.RefreshTTLDay = 30
	}
	if cfg.Redis.RateLimit == 0 {
		cfg.Redis.RateLimit = 200
	}
	if cfg.Redis.RateWindowSecs == 0 {
		cfg.Redis.RateWindowSecs = 60
	}
	return cfg
}

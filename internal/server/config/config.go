package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Допустимые значения PASSWORD_SCHEME
const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

// Config содержит конфигурацию сервера
// Загружается один раз при старте из переменных окружения
// и дальше не изменяется
type Config struct {
	Address        string        `env:"ADDRESS" envDefault:":8090"`          // адрес HTTP сервера
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"auth.db"`  // путь к файлу SQLite
	SecretKey      string        `env:"SECRET_KEY,required,notEmpty"`        // базовый секрет подписи токенов
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"720h"`  // время жизни access token (+30 дней)
	PasswordScheme string        `env:"PASSWORD_SCHEME" envDefault:"plain"`  // схема хранения пароля: plain | bcrypt
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"info"`         // уровень логирования
	RateLimit      int           `env:"RATE_LIMIT" envDefault:"10"`          // запросов на credential эндпоинты с одного IP
	RateWindow     time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`   // окно rate limit
}

// New загружает и валидирует конфигурацию из окружения
func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeBcrypt:
	default:
		return nil, fmt.Errorf("unknown password scheme: %q", cfg.PasswordScheme)
	}

	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive, got %s", cfg.AccessTokenTTL)
	}

	return cfg, nil
}

// config предоставляет структуру конфигурации сервиса инвестиционных идей
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config - корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env          string        `yaml:"env"     env:"ENV"        env-default:"local"`
	HTTP         HTTPConfig    `yaml:"http"`
	DB           DBConfig      `yaml:"db"`
	Redis        RedisConfig   `yaml:"redis"`
	Auth         AuthConfig    `yaml:"auth"`
	LimitsConfig LimitsConfig  `yaml:"limits"`
	Timeouts     TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig - таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig - сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (g HTTPConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// DBConfig - настройки подключения к базе данных.
type DBConfig struct {
	// Driver - postgres или mongo.
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	URL    string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	// AutoMigrate применяет миграции PostgreSQL при старте сервиса.
	AutoMigrate bool `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false"`
}

// RedisConfig - кэш страниц списка. Пустой URL отключает кэш.
type RedisConfig struct {
	URL    string        `yaml:"url" env:"REDIS_URL"`
	TTL    time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"30s"`
	Prefix string        `yaml:"prefix" env:"REDIS_PREFIX" env-default:"tips:page:"`
}

// AuthConfig содержит параметры выпуска и валидации токенов.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	Issuer         string        `yaml:"issuer"   env:"ISSUER" env-default:"invest-tips"`
	Audience       []string      `yaml:"audience" env:"AUDIENCE" env-default:"invest-tips-web" env-separator:","`
}

// LimitsConfig - серверные лимиты на выдачу.
type LimitsConfig struct {
	// Применяется при запросе с limit<=0.
	Default int `yaml:"default" env:"DEFAULT_LIMIT" env-default:"10"`
	// Верхняя граница для limit.
	Max int `yaml:"max" env:"MAX_LIMIT" env-default:"100"`
}

// MustLoad - обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	switch {
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	case fileExists("local.yaml"):
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// validate - базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverMongo {
		return fmt.Errorf("db.driver must be %q or %q, got %q", DriverPostgres, DriverMongo, c.DB.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}
	if c.Redis.URL != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be > 0 when redis.url is set")
	}
	if c.LimitsConfig.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.LimitsConfig.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.LimitsConfig.Default > c.LimitsConfig.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Audit    AuditConfig    `yaml:"audit"`
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

// AuditConfig - настройки правил по умолчанию
type AuditConfig struct {
	LowerCoefficient string `yaml:"lower_coefficient"`
	UpperCoefficient string `yaml:"upper_coefficient"`
	MaxLevel         int    `yaml:"max_level"`
	StrictParsing    bool   `yaml:"strict_parsing"`
}

// DSN возвращает строку подключения: для PostgreSQL параметры, для SQLite путь к файлу
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Dialect возвращает имя диалекта goose
func (c *DatabaseConfig) Dialect() string {
	if c.Driver == "sqlite" {
		return "sqlite3"
	}
	return "postgres"
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "orgstructure"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "orgaudit.db"),
		},
		Audit: AuditConfig{
			LowerCoefficient: getEnv("AUDIT_LOWER_COEFFICIENT", "1.2"),
			UpperCoefficient: getEnv("AUDIT_UPPER_COEFFICIENT", "1.5"),
			MaxLevel:         getEnvInt("AUDIT_MAX_LEVEL", 5),
			StrictParsing:    getEnvBool("AUDIT_STRICT_PARSING", false),
		},
	}
}

// LoadFile загружает конфигурацию из окружения и накладывает поверх неё YAML файл
func LoadFile(path string) (*Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FromEnv выбирает Load или LoadFile в зависимости от CONFIG_FILE
func FromEnv() (*Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return LoadFile(path)
	}
	return Load(), nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

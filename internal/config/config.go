package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	DB     PostgresConfig
	Kafka  KafkaConfig
	Client ClientConfig
	Jobs   JobsConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

// KafkaConfig configures the order-event producer. Empty Brokers disables
// event publishing entirely.
type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

// ClientConfig configures the outbound API client used by the scheduled jobs.
type ClientConfig struct {
	BaseURL        string
	TimeoutSeconds int
	MaxRetries     int
}

// JobsConfig holds the fixed log paths and windows of the scheduled jobs.
// The log files are an external contract: other tooling tails them.
type JobsConfig struct {
	HeartbeatLogPath   string
	ReminderLogPath    string
	ReminderWindowDays int
	HeartbeatRetries   int
	ReminderRetries    int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "crm_api"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8000),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "crm"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:    splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "")),
			OrderTopic: getEnv("KAFKA_ORDER_TOPIC", "crm.orders.created"),
		},
		Client: ClientConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8000"),
			TimeoutSeconds: getEnvAsInt("CLIENT_TIMEOUT_SECONDS", 30),
			MaxRetries:     getEnvAsInt("CLIENT_MAX_RETRIES", 3),
		},
		Jobs: JobsConfig{
			HeartbeatLogPath:   getEnv("HEARTBEAT_LOG_PATH", "/tmp/crm_heartbeat_log.txt"),
			ReminderLogPath:    getEnv("REMINDER_LOG_PATH", "/tmp/order_reminders_log.txt"),
			ReminderWindowDays: getEnvAsInt("REMINDER_WINDOW_DAYS", 7),
			HeartbeatRetries:   getEnvAsInt("HEARTBEAT_RETRIES", 2),
			ReminderRetries:    getEnvAsInt("REMINDER_RETRIES", 3),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Enabled reports whether event publishing is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "" {
		return fmt.Errorf("database config is incomplete")
	}
	if c.Client.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is empty")
	}
	if c.Jobs.ReminderWindowDays <= 0 {
		return fmt.Errorf("REMINDER_WINDOW_DAYS must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}

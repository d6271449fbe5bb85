package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers           []string
	EventsTopic       string
	LoanMutationTopic string
	ConsumerGroup     string
}

type EngineConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Engine      EngineConfig
	ServiceName string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Engine.BaseURL == "" {
		panic("CALC_ENGINE_URL environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9093),
		HTTPPort: getEnvInt("HTTP_PORT", 8093),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loancalc"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loancalc"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers:           strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			EventsTopic:       getEnv("KAFKA_EVENTS_TOPIC", "loancalc.events"),
			LoanMutationTopic: getEnv("KAFKA_LOAN_MUTATION_TOPIC", "lending.loan_mutations"),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "loancalc-service"),
		},
		Engine: EngineConfig{
			BaseURL:        getEnv("CALC_ENGINE_URL", ""),
			APIKey:         getEnv("CALC_ENGINE_API_KEY", ""),
			TimeoutSeconds: getEnvInt("CALC_ENGINE_TIMEOUT_SECONDS", 10),
		},
		ServiceName: "loancalc-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

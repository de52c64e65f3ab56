package config

import (
	"os"
	"time"
)

type Config struct {
	HTTP_PORT           string `env:"HTTP_PORT"`
	DB_STRING           string `env:"DB_STRING"`
	KAFKA_BROKERS       string `env:"KAFKA_BROKERS"`
	KAFKA_ORDER_TOPIC   string `env:"KAFKA_ORDER_TOPIC"`
	KAFKA_PAYMENT_TOPIC string `env:"KAFKA_PAYMENT_TOPIC"`
	OUTBOX_INTERVAL     time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTP_PORT:           os.Getenv("HTTP_PORT"),
		DB_STRING:           os.Getenv("DB_STRING"),
		KAFKA_BROKERS:       os.Getenv("KAFKA_BROKERS"),
		KAFKA_ORDER_TOPIC:   os.Getenv("KAFKA_ORDER_TOPIC"),
		KAFKA_PAYMENT_TOPIC: os.Getenv("KAFKA_PAYMENT_TOPIC"),
	}

	if cfg.HTTP_PORT == "" {
		cfg.HTTP_PORT = "8080"
	}
	if cfg.KAFKA_ORDER_TOPIC == "" {
		cfg.KAFKA_ORDER_TOPIC = "order-events"
	}
	if cfg.KAFKA_PAYMENT_TOPIC == "" {
		cfg.KAFKA_PAYMENT_TOPIC = "payment-events"
	}

	cfg.OUTBOX_INTERVAL = 5 * time.Second
	if v := os.Getenv("OUTBOX_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.OUTBOX_INTERVAL = d
		}
	}

	return cfg, nil
}

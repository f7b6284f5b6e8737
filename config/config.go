package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	LogLevel      string              `yaml:"log_level"`
	Database      DatabaseConfig      `yaml:"database"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Redis         RedisConfig         `yaml:"redis"`
	MarketAPI     MarketAPIConfig     `yaml:"market_api"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// ConnString renders the pgx connection URL. An empty ssl_mode means "disable".
func (d DatabaseConfig) ConnString() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

type KafkaConfig struct {
	Host                      string `yaml:"host"`
	Port                      int    `yaml:"port"`
	ShippingProgressTopicName string `yaml:"shipping_progress_topic_name"`
	ConsumerGroup             string `yaml:"consumer_group"`
}

func (k KafkaConfig) Brokers() []string {
	return []string{fmt.Sprintf("%s:%d", k.Host, k.Port)}
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type MarketAPIConfig struct {
	HTTPAddr               string `yaml:"http_addr"`
	TrackedOrderTTLSeconds int    `yaml:"tracked_order_ttl_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

type NotificationsConfig struct {
	// "direct" writes from the request path, "kafka" hands off to notify-worker.
	Mode           string   `yaml:"mode"`
	NotifyStatuses []string `yaml:"notify_statuses"`

	RateLimitPerWindow  int64 `yaml:"rate_limit_per_window"`
	RateLimitWindowSecs int   `yaml:"rate_limit_window_seconds"`

	WorkerHTTPAddr    string `yaml:"worker_http_addr"`
	WorkerMaxAttempts int    `yaml:"worker_max_attempts"`
	WorkerBackoff1Ms  int    `yaml:"worker_backoff_1_ms"`
	WorkerBackoff2Ms  int    `yaml:"worker_backoff_2_ms"`
	WorkerBackoff3Ms  int    `yaml:"worker_backoff_3_ms"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}

// Package config holds the configuration sections every service shares and
// the viper loader they all go through.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/spf13/viper"
)

// Bus drivers
const (
	BusSNS    = "sns"
	BusKafka  = "kafka"
	BusMemory = "memory"
)

// Storage and idempotency drivers
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Common is embedded (squashed) into each service's Config
type Common struct {
	ServiceName string         `mapstructure:"service_name"`
	Env         string         `mapstructure:"env"`
	Port        string         `mapstructure:"port"`
	Storage     string         `mapstructure:"storage"`
	Database    Database       `mapstructure:"database"`
	Bus         Bus            `mapstructure:"bus"`
	AWS         AWS            `mapstructure:"aws"`
	Kafka       Kafka          `mapstructure:"kafka"`
	Redis       Redis          `mapstructure:"redis"`
	Idempotency Idempotency    `mapstructure:"idempotency"`
	Telemetry   Telemetry      `mapstructure:"telemetry"`
	Logging     logging.Config `mapstructure:"logging"`
}

type Database struct {
	URL          string `mapstructure:"url"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type Bus struct {
	Driver        string `mapstructure:"driver"`
	MaxDeliveries int    `mapstructure:"max_deliveries"`
}

type AWS struct {
	Region      string `mapstructure:"region"`
	SNSTopicArn string `mapstructure:"sns_topic_arn"`
	SQSQueueURL string `mapstructure:"sqs_queue_url"`
	Workers     int32  `mapstructure:"workers"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	GroupID string   `mapstructure:"group_id"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Idempotency struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type Telemetry struct {
	Enabled        bool   `mapstructure:"enabled"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	ServiceVersion string `mapstructure:"service_version"`
}

// ConnectionURL returns the postgres connection string, preferring an explicit url
func (d Database) ConnectionURL() string {
	if d.URL != "" {
		return d.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
		d.SSLMode,
	)
}

// SetCommonDefaults registers the defaults shared by every service
func SetCommonDefaults(v *viper.Viper, serviceName, port, database string) {
	v.SetDefault("service_name", serviceName)
	v.SetDefault("env", getEnv("ENV", "local"))
	v.SetDefault("port", getEnv("PORT", port))
	v.SetDefault("storage", DriverPostgres)

	v.SetDefault("database.url", os.Getenv("DATABASE_URL"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", database)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("bus.driver", BusSNS)
	v.SetDefault("bus.max_deliveries", 5)

	v.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	v.SetDefault("aws.sns_topic_arn", getEnv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:enrollment-events.fifo"))
	v.SetDefault("aws.sqs_queue_url", getEnv("SQS_QUEUE_URL", "http://localhost:4566/000000000000/"+serviceName+".fifo"))
	v.SetDefault("aws.workers", 10)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", serviceName)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("idempotency.driver", DriverRedis)
	v.SetDefault("idempotency.ttl", 24*time.Hour)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4318")
	v.SetDefault("telemetry.service_version", "1.0.0")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load reads <ENVIRONMENT>.json from configDir when present, applies
// <envPrefix>_* environment overrides and unmarshals into out.
func Load(v *viper.Viper, configDir, envPrefix string, out interface{}) error {
	v.SetConfigName(getEnv("ENVIRONMENT", "local"))
	v.SetConfigType("json")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	return nil
}

// Validate checks the driver selections
func (c Common) Validate() error {
	switch c.Bus.Driver {
	case BusSNS, BusKafka, BusMemory:
	default:
		return fmt.Errorf("unknown bus driver %q", c.Bus.Driver)
	}

	switch c.Storage {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage)
	}

	switch c.Idempotency.Driver {
	case DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown idempotency driver %q", c.Idempotency.Driver)
	}

	if c.Bus.MaxDeliveries < 1 {
		return fmt.Errorf("bus.max_deliveries must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

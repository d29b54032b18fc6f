package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the complete configuration for the application
type AppConfig struct {
	Environment string           `mapstructure:"environment"`
	LogLevel    string           `mapstructure:"log_level"`
	ServiceName string           `mapstructure:"service_name"`
	Source      SourceConfig     `mapstructure:"source"`
	MongoDB     MongoConfig      `mapstructure:"mongodb"`
	Scraper     ScraperConfig    `mapstructure:"scraper"`
	Checkpoint  CheckpointConfig `mapstructure:"checkpoint"`
	Kafka       KafkaConfig      `mapstructure:"kafka"`
	Server      ServerConfig     `mapstructure:"server"`
}

type SourceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type ScraperConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type CheckpointConfig struct {
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisKey  string `mapstructure:"redis_key"`
}

// KafkaConfig configures tick announcements. Announcing is disabled when
// no brokers are set.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load loads configuration from file and environment variables
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	// Default values
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("service_name", "scraper")
	v.SetDefault("source.url", "https://www.bushtarion.com/dumpdata1.txt")
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("mongodb.database", "bushtarion")
	v.SetDefault("mongodb.connect_timeout", 10*time.Second)
	v.SetDefault("scraper.interval", time.Hour)
	v.SetDefault("checkpoint.path", "checkpoint.json")
	v.SetDefault("checkpoint.redis_key", "scraper:checkpoint")
	v.SetDefault("server.addr", ":8080")

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	// Bind environment variables explicitly for nested structs to ensure Unmarshal picks them up
	v.BindEnv("service_name", "SERVICE_NAME")
	v.BindEnv("environment", "ENVIRONMENT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("source.url", "SOURCE_URL")
	v.BindEnv("source.timeout", "SOURCE_TIMEOUT")
	v.BindEnv("mongodb.uri", "MONGODB_URI")
	v.BindEnv("mongodb.database", "MONGODB_DATABASE")
	v.BindEnv("scraper.interval", "SCRAPER_INTERVAL")
	v.BindEnv("checkpoint.path", "CHECKPOINT_PATH")
	v.BindEnv("checkpoint.redis_addr", "CHECKPOINT_REDIS_ADDR")
	v.BindEnv("checkpoint.redis_key", "CHECKPOINT_REDIS_KEY")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_TOPIC")
	v.BindEnv("server.addr", "SERVER_ADDR")

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Manual check for Kafka brokers if they came as a single string from env
	brokers := v.GetString("kafka.brokers")
	if brokers != "" && len(config.Kafka.Brokers) == 0 {
		config.Kafka.Brokers = strings.Split(brokers, ",")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *AppConfig) Validate() error {
	if c.ServiceName == "" {
		return errors.New("service_name is required")
	}
	if c.Source.URL == "" {
		return errors.New("source.url is required")
	}
	if c.MongoDB.URI == "" {
		return errors.New("mongodb.uri is required")
	}
	if c.MongoDB.Database == "" {
		return errors.New("mongodb.database is required")
	}
	if c.Scraper.Interval <= 0 {
		return errors.New("scraper.interval must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return errors.New("kafka.topic is required when kafka.brokers is set")
	}
	return nil
}

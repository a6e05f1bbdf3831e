package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName   string        `mapstructure:"service_name"`
	Env           string        `mapstructure:"env"`
	Port          string        `mapstructure:"port"`
	Collaborators Collaborators `mapstructure:"collaborators"`
	Payment       Payment       `mapstructure:"payment"`
	AWS           AWS           `mapstructure:"aws"`
	Telemetry     Telemetry     `mapstructure:"telemetry"`
}

type Collaborators struct {
	OrderURL        string `mapstructure:"order_url"`
	InventoryURL    string `mapstructure:"inventory_url"`
	NotificationURL string `mapstructure:"notification_url"`
	LoggingURL      string `mapstructure:"logging_url"`
}

type Payment struct {
	// Endpoints are the interchangeable card processors, tried in
	// rotation order.
	Endpoints           []string `mapstructure:"endpoints"`
	AttemptsPerEndpoint int      `mapstructure:"attempts_per_endpoint"`
	RetryDelayMillis    int      `mapstructure:"retry_delay_millis"`
}

// RetryDelay returns the configured inter-attempt delay
func (p Payment) RetryDelay() time.Duration {
	return time.Duration(p.RetryDelayMillis) * time.Millisecond
}

type AWS struct {
	Region      string `mapstructure:"region"`
	SNSTopicArn string `mapstructure:"sns_topic_arn"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	configDir := filepath.Join(filepath.Dir(filename))
	viper.SetConfigName(getConfigName())
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ORCHESTRATION")

	setDefaultsFromEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults and environment variables cover a missing config file.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

func setDefaultsFromEnv() {
	viper.SetDefault("service_name", "orchestration-service")
	viper.SetDefault("env", getEnv("ENV", "local"))
	viper.SetDefault("port", getEnv("PORT", "8080"))

	viper.SetDefault("collaborators.order_url", getEnv("ORDER_SERVICE_URL", "http://localhost:8081"))
	viper.SetDefault("collaborators.inventory_url", getEnv("INVENTORY_SERVICE_URL", "http://localhost:8082"))
	viper.SetDefault("collaborators.notification_url", getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8083"))
	viper.SetDefault("collaborators.logging_url", getEnv("LOGGING_SERVICE_URL", "http://localhost:8085"))

	viper.SetDefault("payment.endpoints", []string{
		getEnv("PAYMENT_ENDPOINT_1", "http://localhost:6001"),
		getEnv("PAYMENT_ENDPOINT_2", "http://localhost:6002"),
	})
	viper.SetDefault("payment.attempts_per_endpoint", 2)
	viper.SetDefault("payment.retry_delay_millis", 200)

	viper.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	viper.SetDefault("aws.sns_topic_arn", getEnv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:saga-events"))

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.otlp_endpoint", getEnv("OTLP_ENDPOINT", "localhost:4318"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"order-console/internal/core/proxy"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the console server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// MetricsEnabled exposes the Prometheus endpoint and records client metrics.
	MetricsEnabled bool `mapstructure:"METRICS_ENABLED" default:"true"`

	// API holds the remote orders API configuration.
	API APIConfig `mapstructure:",squash"`

	// Session holds the credential storage configuration.
	Session SessionConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy used to reach the API.
	Proxy proxy.Settings `mapstructure:",squash"`
}

// APIConfig holds the connection details of the remote API.
type APIConfig struct {
	// BaseURL is the root every request path is resolved against.
	BaseURL string `mapstructure:"API_BASE_URL" required:"true"`
	// Timeout bounds a single request, including reading the response body.
	Timeout time.Duration `mapstructure:"API_TIMEOUT" default:"30s"`
	// Token is an optional access token installed at startup.
	Token string `mapstructure:"API_TOKEN"`
}

// SessionConfig holds where bearer credentials are kept.
type SessionConfig struct {
	// RedisURL selects the Redis token store when set; memory is used otherwise.
	RedisURL string `mapstructure:"REDIS_URL"`
	// Key is the cache key the tokens are stored under.
	Key string `mapstructure:"SESSION_KEY" default:"session_tokens"`
	// TTL expires stored tokens. Zero keeps them until logout or a 401.
	TTL time.Duration `mapstructure:"SESSION_TTL"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds their env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}

		if defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

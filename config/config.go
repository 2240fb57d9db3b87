// Package config loads the client configuration from the environment, with
// an optional .env file layered underneath.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/octabyte/bm-social/enums"
)

const (
	DefaultAPIURL              = "http://localhost:8080"
	DefaultHTTPTimeout         = 15 * time.Second
	DefaultSuccessBanner       = 3 * time.Second
	DefaultProfile             = "default"
	DefaultQueueName           = "bm-social.posts.created"
	DefaultDevServerAddr       = ":8080"
	DefaultServiceName         = "bm-social"
	defaultSessionFileBasename = "session.json"
)

type Config struct {
	APIURL         string               `validate:"required,url"`
	HTTPTimeout    time.Duration        `validate:"gt=0"`
	SessionBackend enums.SessionBackend `validate:"oneof=file redis memory"`
	SessionPath    string               `validate:"required_if=SessionBackend file"`
	Profile        string               `validate:"required"`
	SuccessBanner  time.Duration        `validate:"gt=0"`
	Redis          RedisConfig
	Queue          QueueConfig
	Log            LogConfig
	Otel           OtelConfig
	DevServer      DevServerConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"gte=0"`
}

type QueueConfig struct {
	URI  string
	Name string `validate:"required_with=URI"`
}

type LogConfig struct {
	Level string
	Env   string
}

type OtelConfig struct {
	Enabled    bool
	Endpoint   string  `validate:"required_if=Enabled true"`
	SampleRate float64 `validate:"gte=0,lte=1"`
}

type DevServerConfig struct {
	Addr   string
	Secret string
}

func (cfg *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return err
	}
	if cfg.SessionBackend == enums.SessionBackendRedis && cfg.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required for the redis session backend")
	}
	return nil
}

// Load reads envFiles (missing files are ignored, nothing is overridden) and
// builds the configuration from the environment.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	sessionPath, err := envOrFunc("BM_SOCIAL_SESSION_PATH", DefaultSessionPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:         envOr("BM_SOCIAL_API_URL", DefaultAPIURL),
		SessionBackend: enums.SessionBackend(envOr("BM_SOCIAL_SESSION_BACKEND", string(enums.SessionBackendFile))),
		SessionPath:    sessionPath,
		Profile:        envOr("BM_SOCIAL_PROFILE", DefaultProfile),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Queue: QueueConfig{
			URI:  os.Getenv("AMQP_URI"),
			Name: envOr("AMQP_QUEUE", DefaultQueueName),
		},
		Log: LogConfig{
			Level: envOr("LOG_LEVEL", enums.LogLevelWarn),
			Env:   envOr("ENV", "production"),
		},
		Otel: OtelConfig{
			Endpoint: os.Getenv("OTEL_ENDPOINT"),
		},
		DevServer: DevServerConfig{
			Addr:   envOr("BM_SOCIAL_DEVSERVER_ADDR", DefaultDevServerAddr),
			Secret: envOr("BM_SOCIAL_DEVSERVER_SECRET", "dev-secret"),
		},
	}

	if cfg.HTTPTimeout, err = durationEnv("BM_SOCIAL_HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.SuccessBanner, err = durationEnv("BM_SOCIAL_SUCCESS_BANNER", DefaultSuccessBanner); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Otel.Enabled, err = boolEnv("OTEL_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.Otel.SampleRate, err = floatEnv("OTEL_SAMPLE_RATE", 1.0); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultSessionPath is the session file under the user config directory.
func DefaultSessionPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, DefaultServiceName, defaultSessionFileBasename), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrFunc(key string, def func() (string, error)) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return def()
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

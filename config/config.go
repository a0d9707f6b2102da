package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "CONFIG_FILE"

// Config is the full runtime configuration of the API process.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	GinMode         string        `yaml:"gin_mode" env:"GIN_MODE"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects the gorm dialector. Driver is one of mysql, postgres or sqlite.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"DB_DRIVER"`
	DSN             string        `yaml:"dsn" env:"DB_DSN"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	ConnectRetries  int           `yaml:"connect_retries" env:"DB_CONNECT_RETRIES"`
	RetryInterval   time.Duration `yaml:"retry_interval" env:"DB_RETRY_INTERVAL"`
	SlowThreshold   time.Duration `yaml:"slow_threshold" env:"DB_SLOW_THRESHOLD"`
	LogLevel        string        `yaml:"log_level" env:"DB_LOG_LEVEL"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL"`
}

// RedisConfig configures the station status publisher. An empty Addr disables it.
type RedisConfig struct {
	Addr          string        `yaml:"addr" env:"REDIS_ADDR"`
	Password      string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB            int           `yaml:"db" env:"REDIS_DB"`
	StatusChannel string        `yaml:"status_channel" env:"REDIS_STATUS_CHANNEL"`
	DialTimeout   time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" env:"REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT"`
}

type JobsConfig struct {
	ReservationExpirySchedule string        `yaml:"reservation_expiry_schedule" env:"RESERVATION_EXPIRY_SCHEDULE"`
	ReservationGracePeriod    time.Duration `yaml:"reservation_grace_period" env:"RESERVATION_GRACE_PERIOD"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			GinMode:         "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "mysql",
			DSN:             "ecodrive:ecodrive@tcp(127.0.0.1:3306)/ecodrive?charset=utf8mb4&parseTime=True&loc=Local",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
			ConnectRetries:  5,
			RetryInterval:   5 * time.Second,
			SlowThreshold:   200 * time.Millisecond,
			LogLevel:        "warn",
		},
		Log: LogConfig{Level: "info"},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
		Redis: RedisConfig{
			StatusChannel: "ecodrive:status-estacoes",
			DialTimeout:   5 * time.Second,
			ReadTimeout:   3 * time.Second,
			WriteTimeout:  3 * time.Second,
		},
		Jobs: JobsConfig{
			ReservationExpirySchedule: "*/5 * * * *",
			ReservationGracePeriod:    30 * time.Minute,
		},
	}
}

// Load reads .env (when present), then the YAML file named by CONFIG_FILE (when set),
// then environment variables, each layer overriding the previous one.
func Load() (Config, error) {
	// missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := Default()
	if err := LoadInto(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the process cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database dsn is empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: jwt secret is empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: token ttl must be positive")
	}
	return nil
}

// LoadInto hydrates target from the YAML file named by CONFIG_FILE and then overrides
// fields from the environment. Fields use explicit `env:"KEY"` tags; untagged fields
// get PARENT_CHILD keys.
func LoadInto(target interface{}) error {
	if target == nil {
		return errors.New("config: target is nil")
	}

	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return errors.New("config: target must be pointer to struct")
	}

	if path := os.Getenv(configPathEnv); path != "" {
		if err := loadFromFile(path, target); err != nil {
			return err
		}
	}

	return populateFromEnv(val.Elem(), "")
}

func loadFromFile(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func populateFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fieldVal := v.Field(i)
		fieldType := t.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		rawKey := fieldType.Tag.Get("env")
		if rawKey == "-" {
			continue
		}

		envKey := normalizeKey(prefix, fieldType.Name)
		if rawKey != "" {
			envKey = normalizeKey("", rawKey)
		}

		if fieldVal.Kind() == reflect.Struct {
			if err := populateFromEnv(fieldVal, envKey); err != nil {
				return err
			}
			continue
		}

		if raw, ok := os.LookupEnv(envKey); ok {
			if err := assign(fieldVal, raw); err != nil {
				return fmt.Errorf("config: parse %s: %w", envKey, err)
			}
		}
	}
	return nil
}

func normalizeKey(prefix, key string) string {
	key = strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}

func assign(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(parsed)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type().String())
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Rubric sources.
const (
	RubricDefault  = "default"
	RubricFile     = "file"
	RubricMinio    = "minio"
	RubricMySQL    = "mysql"
	RubricPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Rubric    RubricConfig    `yaml:"rubric"`
	Database  DatabaseConfig  `yaml:"database"`
	Minio     MinioConfig     `yaml:"minio"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type OpenAIConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseURL"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

type AnalysisConfig struct {
	// Parallel runs the four category calls concurrently.
	Parallel bool   `yaml:"parallel"`
	Brand    string `yaml:"brand"`
}

type RubricConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslMode"`
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"accessKey"`
	SecretKey  string `yaml:"secretKey"`
	BucketName string `yaml:"bucketName"`
	Region     string `yaml:"region"`
	UseSSL     bool   `yaml:"useSSL"`
	ObjectKey  string `yaml:"objectKey"`
}

type AuthConfig struct {
	// APIKeys maps a client name to its key. Empty disables auth.
	APIKeys map[string]string `yaml:"apiKeys"`
}

type RateLimitConfig struct {
	Enabled    bool `yaml:"enabled"`
	Capacity   int  `yaml:"capacity"`
	RefillRate int  `yaml:"refillRate"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			MaxTokens:   2048,
			Timeout:     60 * time.Second,
		},
		Analysis:  AnalysisConfig{Parallel: true, Brand: "Milanote"},
		Rubric:    RubricConfig{Source: RubricDefault},
		Database:  DatabaseConfig{Port: 3306, SSLMode: "disable"},
		Minio:     MinioConfig{ObjectKey: "rubric.yaml"},
		RateLimit: RateLimitConfig{Enabled: true, Capacity: 10, RefillRate: 1},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns CONFIG_PATH or config.yaml.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "config.yaml"
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("OPENAI_API_KEY"); ok {
		c.OpenAI.APIKey = v
	}
	if v, ok := lookup("OPENAI_MODEL"); ok && v != "" {
		c.OpenAI.Model = v
	}
	if v, ok := lookup("SCRIPTGUARD_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SCRIPTGUARD_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("SCRIPTGUARD_RUBRIC_SOURCE"); ok && v != "" {
		c.Rubric.Source = v
	}
	if v, ok := lookup("SCRIPTGUARD_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks the settings that Load cannot default.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.OpenAI.Model) == "" {
		add("openai.model is required")
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		add("openai.temperature must be within [0, 2]")
	}
	if c.OpenAI.BaseURL != "" {
		if u, err := url.Parse(c.OpenAI.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			add("openai.baseURL %q is not an absolute URL", c.OpenAI.BaseURL)
		}
	}

	c.Rubric.Source = strings.ToLower(strings.TrimSpace(c.Rubric.Source))
	switch c.Rubric.Source {
	case RubricDefault:
	case RubricFile:
		if c.Rubric.Path == "" {
			add("rubric.path is required for the file source")
		}
	case RubricMinio:
		if c.Minio.Endpoint == "" || c.Minio.BucketName == "" || c.Minio.ObjectKey == "" {
			add("minio.endpoint, minio.bucketName and minio.objectKey are required for the minio source")
		}
	case RubricMySQL, RubricPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			add("database.host and database.name are required for the %s source", c.Rubric.Source)
		}
	default:
		add("rubric.source %q is unknown", c.Rubric.Source)
	}

	for client, key := range c.Auth.APIKeys {
		if strings.TrimSpace(client) == "" || strings.TrimSpace(key) == "" {
			add("auth.apiKeys entries need a client name and a key")
			break
		}
	}
	if c.RateLimit.Enabled && c.RateLimit.Capacity < 1 {
		add("rateLimit.capacity must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("log.level %q is unknown", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		add("log.format %q is unknown", c.Log.Format)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// MySQLDSN builds the go-sql-driver DSN.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection URL.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

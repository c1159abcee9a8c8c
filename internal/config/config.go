package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		Env             string        `yaml:"env"`
		LogLevel        string        `yaml:"log_level"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		// пусто - X-Forwarded-For не учитывается, IP берётся из соединения
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"server"`

	Database struct {
		Driver          string        `yaml:"driver"` // postgres, mysql, sqlite
		DSN             string        `yaml:"url"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	} `yaml:"database"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`

	OAuth struct {
		GoogleClientID     string `yaml:"google_client_id"`
		GoogleClientSecret string `yaml:"google_client_secret"`
	} `yaml:"oauth"`

	Email struct {
		Provider     string `yaml:"provider"` // console, smtp, amqp
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		AMQPURL      string `yaml:"amqp_url"`
		AMQPExchange string `yaml:"amqp_exchange"`
	} `yaml:"email"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Workers struct {
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
	} `yaml:"workers"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// envOverrides - переменные окружения, которые перекрывают config.yaml
type envOverrides struct {
	DatabaseURL        string        `envconfig:"DATABASE_URL"`
	DatabaseDriver     string        `envconfig:"DATABASE_DRIVER"`
	Host               string        `envconfig:"HOST"`
	Port               int           `envconfig:"PORT"`
	Env                string        `envconfig:"SERVER_ENV"`
	LogLevel           string        `envconfig:"LOG_LEVEL"`
	FrontEndURL        string        `envconfig:"FRONT_END_URL"`
	TrustedProxies     string        `envconfig:"TRUSTED_PROXIES"`
	JWTSecret          string        `envconfig:"JWT_SECRET"`
	JWTTTL             time.Duration `envconfig:"JWT_TTL"`
	GoogleClientID     string        `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `envconfig:"GOOGLE_CLIENT_SECRET"`
	EmailProvider      string        `envconfig:"EMAIL_PROVIDER"`
	EmailFrom          string        `envconfig:"EMAIL_FROM"`
	SMTPHost           string        `envconfig:"SMTP_HOST"`
	SMTPPort           int           `envconfig:"SMTP_PORT"`
	SMTPUser           string        `envconfig:"SMTP_USER"`
	SMTPPassword       string        `envconfig:"SMTP_PASSWORD"`
	AMQPURL            string        `envconfig:"AMQP_URL"`
	AMQPExchange       string        `envconfig:"AMQP_EXCHANGE"`
	RateLimitRPS       float64       `envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst     int           `envconfig:"RATE_LIMIT_BURST"`
	CleanupInterval    time.Duration `envconfig:"CLEANUP_INTERVAL"`
	FirstAdminEmail    string        `envconfig:"FIRST_ADMIN_EMAIL"`
	FirstAdminPassword string        `envconfig:"FIRST_ADMIN_PASSWORD"`
}

var AppConfig *Config

// Default возвращает конфигурацию для локальной разработки
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.JWT.TTL = 24 * time.Hour
	cfg.Email.Provider = "console"
	cfg.Email.FromEmail = "no-reply@appointly.local"
	cfg.Email.FromName = "Appointly"
	cfg.Email.SMTPPort = 587
	cfg.Email.AMQPExchange = "appointly.mail"
	cfg.RateLimit.RPS = 1
	cfg.RateLimit.Burst = 5
	cfg.Workers.CleanupInterval = time.Hour
	return &cfg
}

// Load собирает конфигурацию: значения по умолчанию, затем config.yaml
// (если есть), затем .env и переменные окружения.
func Load() (*Config, error) {
	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := loadFile(configPath, cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	env.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (e envOverrides) apply(cfg *Config) {
	setString(&cfg.Database.DSN, e.DatabaseURL)
	setString(&cfg.Database.Driver, e.DatabaseDriver)
	setString(&cfg.Server.Host, e.Host)
	setString(&cfg.Server.Env, e.Env)
	setString(&cfg.Server.LogLevel, e.LogLevel)
	setString(&cfg.JWT.Secret, e.JWTSecret)
	setString(&cfg.OAuth.GoogleClientID, e.GoogleClientID)
	setString(&cfg.OAuth.GoogleClientSecret, e.GoogleClientSecret)
	setString(&cfg.Email.Provider, e.EmailProvider)
	setString(&cfg.Email.FromEmail, e.EmailFrom)
	setString(&cfg.Email.SMTPHost, e.SMTPHost)
	setString(&cfg.Email.SMTPUsername, e.SMTPUser)
	setString(&cfg.Email.SMTPPassword, e.SMTPPassword)
	setString(&cfg.Email.AMQPURL, e.AMQPURL)
	setString(&cfg.Email.AMQPExchange, e.AMQPExchange)
	setString(&cfg.FirstAdminEmail, e.FirstAdminEmail)
	setString(&cfg.FirstAdminPassword, e.FirstAdminPassword)

	if e.Port > 0 {
		cfg.Server.Port = e.Port
	}
	if e.SMTPPort > 0 {
		cfg.Email.SMTPPort = e.SMTPPort
	}
	if e.JWTTTL > 0 {
		cfg.JWT.TTL = e.JWTTTL
	}
	if e.RateLimitRPS > 0 {
		cfg.RateLimit.RPS = e.RateLimitRPS
	}
	if e.RateLimitBurst > 0 {
		cfg.RateLimit.Burst = e.RateLimitBurst
	}
	if e.CleanupInterval > 0 {
		cfg.Workers.CleanupInterval = e.CleanupInterval
	}
	if origins := parseCSV(e.FrontEndURL); len(origins) > 0 {
		cfg.CORS.AllowedOrigins = origins
	}
	if proxies := parseCSV(e.TrustedProxies); len(proxies) > 0 {
		cfg.Server.TrustedProxies = proxies
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func parseCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (DATABASE_URL)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" && !c.IsDevelopment() {
		return errors.New("jwt secret is required outside development (JWT_SECRET)")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt ttl must be positive")
	}
	switch c.Email.Provider {
	case "console", "smtp", "amqp":
	default:
		return fmt.Errorf("unsupported email provider %q", c.Email.Provider)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// FrontendURL - базовый адрес клиента, первый из разрешённых CORS origin
func (c *Config) FrontendURL() string {
	if len(c.CORS.AllowedOrigins) > 0 {
		return strings.TrimRight(c.CORS.AllowedOrigins[0], "/")
	}
	return "http://localhost:3000"
}

// Address возвращает host:port для http.Server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadConfig загружает глобальный AppConfig, завершая процесс при ошибке
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	AppConfig = cfg
}


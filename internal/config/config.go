package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port         int    `yaml:"port"`
	GinMode      string `yaml:"gin_mode"`
	FrontendURL  string `yaml:"frontend_url"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	DSN              string `yaml:"dsn"`
	Schema           string `yaml:"schema"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
	StatementTimeout string `yaml:"statement_timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type VerificationConfig struct {
	CodeTTL       string `yaml:"code_ttl"`
	CodeLength    int    `yaml:"code_length"`
	MaxAttempts   int    `yaml:"max_attempts"`
	ResetTokenTTL string `yaml:"reset_token_ttl"`
}

type ThrottleConfig struct {
	ResetWindow        string `yaml:"reset_window"`
	VerificationWindow string `yaml:"verification_window"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type UploadConfig struct {
	Root     string `yaml:"root"`
	MaxBytes int64  `yaml:"max_bytes"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	Throttle     ThrottleConfig     `yaml:"throttle"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	Twilio       TwilioConfig       `yaml:"twilio"`
	Upload       UploadConfig       `yaml:"upload"`
	Casbin       CasbinConfig       `yaml:"casbin"`
}

type Config struct {
	Port             string
	GinMode          string
	FrontendURL      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	DSN              string
	DBSchema         string
	DBMaxOpenConns   int
	StatementTimeout time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	CodeTTL          time.Duration
	CodeLength       int
	VerifyAttempts   int
	ResetTokenTTL    time.Duration
	ResetWindow      time.Duration
	VerifyWindow     time.Duration
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	SMTPFrom         string
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	UploadRoot       string
	UploadMaxBytes   int64
	CasbinModelPath  string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads .env (if any), the YAML config file, then applies environment overrides
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, relying on environment variables")
	}
	return LoadFile(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFile builds a Config from the YAML file at path plus environment overrides
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	applyDefaults(configFile)
	return build(configFile)
}

func build(f *ConfigFile) (*Config, error) {
	durations := []struct {
		name  string
		value string
	}{
		{"app read timeout", f.App.ReadTimeout},
		{"app write timeout", f.App.WriteTimeout},
		{"database statement timeout", env("DB_STATEMENT_TIMEOUT", f.Database.StatementTimeout)},
		{"JWT access TTL", env("JWT_ACCESS_TTL", f.JWT.AccessTTL)},
		{"verification code TTL", f.Verification.CodeTTL},
		{"reset token TTL", f.Verification.ResetTokenTTL},
		{"reset throttle window", f.Throttle.ResetWindow},
		{"verification throttle window", f.Throttle.VerificationWindow},
	}

	cfg := &Config{
		Port:            env("APP_PORT", fmt.Sprintf("%d", f.App.Port)),
		GinMode:         env("GIN_MODE", f.App.GinMode),
		FrontendURL:     env("FRONTEND_URL", f.App.FrontendURL),
		DSN:             env("DATABASE_DSN", f.Database.DSN),
		DBSchema:        env("DATABASE_SCHEMA", f.Database.Schema),
		DBMaxOpenConns:  f.Database.MaxOpenConns,
		RedisAddr:       env("REDIS_ADDR", f.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", f.Redis.Password),
		RedisDB:         envInt("REDIS_DB", f.Redis.DB),
		JWTSecret:       env("JWT_SECRET", f.JWT.Secret),
		JWTIssuer:       env("JWT_ISSUER", f.JWT.Issuer),
		CodeLength:      f.Verification.CodeLength,
		VerifyAttempts:  f.Verification.MaxAttempts,
		SMTPHost:        env("SMTP_HOST", f.SMTP.Host),
		SMTPPort:        envInt("SMTP_PORT", f.SMTP.Port),
		SMTPUser:        env("SMTP_USER", f.SMTP.Username),
		SMTPPass:        env("SMTP_PASS", f.SMTP.Password),
		SMTPFrom:        env("SMTP_FROM", f.SMTP.From),
		TwilioSID:       env("TWILIO_ACCOUNT_SID", f.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", f.Twilio.AuthToken),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", f.Twilio.FromNumber),
		UploadRoot:      env("UPLOAD_ROOT", f.Upload.Root),
		UploadMaxBytes:  f.Upload.MaxBytes,
		CasbinModelPath: env("CASBIN_MODEL", f.Casbin.ModelPath),
	}
	dsts := []*time.Duration{
		&cfg.ReadTimeout, &cfg.WriteTimeout, &cfg.StatementTimeout, &cfg.AccessTTL,
		&cfg.CodeTTL, &cfg.ResetTokenTTL, &cfg.ResetWindow, &cfg.VerifyWindow,
	}
	for i, d := range durations {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*dsts[i] = parsed
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is required")
	}
	return cfg, nil
}

func applyDefaults(f *ConfigFile) {
	if f.App.Port == 0 {
		f.App.Port = 3000
	}
	if f.App.FrontendURL == "" {
		f.App.FrontendURL = "http://localhost:3000"
	}
	if f.App.ReadTimeout == "" {
		f.App.ReadTimeout = "15s"
	}
	if f.App.WriteTimeout == "" {
		f.App.WriteTimeout = "30s"
	}
	if f.Database.StatementTimeout == "" {
		f.Database.StatementTimeout = "10s"
	}
	if f.JWT.AccessTTL == "" {
		f.JWT.AccessTTL = "24h"
	}
	if f.Verification.CodeTTL == "" {
		f.Verification.CodeTTL = "15m"
	}
	if f.Verification.CodeLength == 0 {
		f.Verification.CodeLength = 6
	}
	if f.Verification.MaxAttempts == 0 {
		f.Verification.MaxAttempts = 5
	}
	if f.Verification.ResetTokenTTL == "" {
		f.Verification.ResetTokenTTL = "1h"
	}
	if f.Throttle.ResetWindow == "" {
		f.Throttle.ResetWindow = "60s"
	}
	if f.Throttle.VerificationWindow == "" {
		f.Throttle.VerificationWindow = "60s"
	}
	if f.SMTP.Host == "" {
		f.SMTP.Host = "smtp.gmail.com"
	}
	if f.SMTP.Port == 0 {
		f.SMTP.Port = 587
	}
	if f.Upload.Root == "" {
		f.Upload.Root = "uploads"
	}
	if f.Upload.MaxBytes == 0 {
		f.Upload.MaxBytes = 3 << 20
	}
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

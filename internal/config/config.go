package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given
const DefaultPath = "config/config.yml"

type AppConfig struct {
	Port      int    `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	PublicURL string `yaml:"public_url"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	ProductTTL string `yaml:"product_ttl"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type ResetConfig struct {
	TTL string `yaml:"ttl"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type CookieConfig struct {
	Secure bool `yaml:"secure"`
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

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Reset    ResetConfig    `yaml:"reset"`
	Password PasswordConfig `yaml:"password"`
	Cookie   CookieConfig   `yaml:"cookie"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Log      LogConfig      `yaml:"log"`
}

type Config struct {
	Port      string
	GinMode   string
	PublicURL string

	DBDriver   string
	DSN        string
	DBLogLevel string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProductCacheTTL time.Duration

	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	ResetTTL     time.Duration
	BcryptCost   int
	CookieSecure bool

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CasbinModelPath string

	LogFormat string
	LogLevel  string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml file at path (DefaultPath when empty), applies
// environment overrides and validates the result. A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if path == "" {
		path = env("CONFIG_PATH", DefaultPath)
	}

	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg, err := fromFile(configFile)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromFile(f *ConfigFile) (*Config, error) {
	accTTL, err := parseDuration("JWT access TTL", f.JWT.AccessTTL, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	refTTL, err := parseDuration("JWT refresh TTL", f.JWT.RefreshTTL, 72*time.Hour)
	if err != nil {
		return nil, err
	}
	resetTTL, err := parseDuration("reset TTL", f.Reset.TTL, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	productTTL, err := parseDuration("product cache TTL", f.Redis.ProductTTL, 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             strconv.Itoa(f.App.Port),
		GinMode:          f.App.GinMode,
		PublicURL:        f.App.PublicURL,
		DBDriver:         f.Database.Driver,
		DSN:              f.Database.DSN,
		DBLogLevel:       f.Database.LogLevel,
		RedisAddr:        f.Redis.Addr,
		RedisPassword:    f.Redis.Password,
		RedisDB:          f.Redis.DB,
		ProductCacheTTL:  productTTL,
		JWTAccessSecret:  f.JWT.AccessSecret,
		JWTRefreshSecret: f.JWT.RefreshSecret,
		JWTIssuer:        f.JWT.Issuer,
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		ResetTTL:         resetTTL,
		BcryptCost:       f.Password.BcryptCost,
		CookieSecure:     f.Cookie.Secure,
		SMTPHost:         f.SMTP.Host,
		SMTPPort:         f.SMTP.Port,
		SMTPUsername:     f.SMTP.Username,
		SMTPPassword:     f.SMTP.Password,
		SMTPFrom:         f.SMTP.From,
		TwilioSID:        f.Twilio.AccountSID,
		TwilioToken:      f.Twilio.AuthToken,
		TwilioFrom:       f.Twilio.FromNumber,
		CasbinModelPath:  f.Casbin.ModelPath,
		LogFormat:        f.Log.Format,
		LogLevel:         f.Log.Level,
	}

	if f.App.Port == 0 {
		cfg.Port = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "bringit"
	}
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = cfg.JWTAccessSecret
	}
	return cfg, nil
}

func parseDuration(name, raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

// applyEnv lets the environment override secrets and endpoints
func (c *Config) applyEnv() {
	c.Port = env("PORT", c.Port)
	c.PublicURL = env("PUBLIC_URL", c.PublicURL)
	c.DBDriver = env("DATABASE_DRIVER", c.DBDriver)
	c.DSN = env("DATABASE_DSN", c.DSN)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = env("REDIS_PASSWORD", c.RedisPassword)
	c.JWTAccessSecret = env("JWT_ACCESS_SECRET", c.JWTAccessSecret)
	c.JWTRefreshSecret = env("JWT_REFRESH_SECRET", c.JWTRefreshSecret)
	c.SMTPPassword = env("SMTP_PASSWORD", c.SMTPPassword)
	c.TwilioSID = env("TWILIO_ACCOUNT_SID", c.TwilioSID)
	c.TwilioToken = env("TWILIO_AUTH_TOKEN", c.TwilioToken)
	c.LogLevel = env("LOG_LEVEL", c.LogLevel)
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch {
	case c.DSN == "":
		return errors.New("database dsn is required")
	case c.JWTAccessSecret == "":
		return errors.New("jwt access secret is required")
	case c.JWTRefreshSecret == "":
		return errors.New("jwt refresh secret is required")
	case isPlaceholderSecret(c.JWTAccessSecret) || isPlaceholderSecret(c.JWTRefreshSecret):
		return errors.New("jwt secrets must be replaced with real values")
	case c.AccessTTL <= 0 || c.RefreshTTL <= 0:
		return errors.New("jwt TTLs must be positive")
	case c.ResetTTL <= 0:
		return errors.New("reset TTL must be positive")
	case c.ProductCacheTTL <= 0:
		return errors.New("product cache TTL must be positive")
	case c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost):
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// placeholderSecrets are sample values that must never sign real tokens
var placeholderSecrets = map[string]bool{
	"change-me":     true,
	"change-me-too": true,
	"changeme":      true,
	"secret":        true,
}

func isPlaceholderSecret(s string) bool {
	return placeholderSecrets[strings.ToLower(strings.TrimSpace(s))]
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

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from flags, environment and an optional file.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	ShutdownTimeout time.Duration
	LogLevel        string
	FrontendURL     string

	Stripe      StripeConfig
	Flutterwave FlutterwaveConfig
	SMTP        SMTPConfig
	Mail        MailConfig
	Notify      NotifyConfig
}

// StripeConfig holds card provider settings. APIURL overrides the public
// endpoint, e.g. for stripe-mock.
type StripeConfig struct {
	SecretKey string
	Currency  string
	APIURL    string
}

type FlutterwaveConfig struct {
	SecretKey string
	BaseURL   string
}

// SMTPConfig describes the outgoing mail relay. An empty Host selects the log-only mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type MailConfig struct {
	From    string
	ReplyTo string
}

type NotifyConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Workers      int
	MaxAttempts  int
}

const (
	keyRunAddress      = "RUN_ADDRESS"
	keyDatabaseURI     = "DATABASE_URI"
	keyJWTSecret       = "JWT_SECRET"
	keyJWTSecretFile   = "JWT_SECRET_FILE"
	keyShutdownTimeout = "SHUTDOWN_TIMEOUT"
	keyLogLevel        = "LOG_LEVEL"
	keyFrontendURL     = "FRONTEND_URL"
	keyStripeSecret    = "STRIPE_SECRET_KEY"
	keyStripeCurrency  = "STRIPE_CURRENCY"
	keyStripeAPIURL    = "STRIPE_API_URL"
	keyFlwSecret       = "FLUTTERWAVE_SECRET_KEY"
	keyFlwBaseURL      = "FLUTTERWAVE_BASE_URL"
	keySMTPHost        = "SMTP_HOST"
	keySMTPPort        = "SMTP_PORT"
	keySMTPUsername    = "SMTP_USERNAME"
	keySMTPPassword    = "SMTP_PASSWORD"
	keyMailFrom        = "MAIL_FROM"
	keyMailReplyTo     = "MAIL_REPLY_TO"
	keyNotifyInterval  = "NOTIFY_POLL_INTERVAL"
	keyNotifyBatch     = "NOTIFY_BATCH_SIZE"
	keyNotifyWorkers   = "NOTIFY_WORKERS"
	keyNotifyAttempts  = "NOTIFY_MAX_ATTEMPTS"
)

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultShutdownTimeout    = 10 * time.Second
	defaultLogLevel           = "info"
	defaultCurrency           = "gbp"
	defaultFlutterwaveBaseURL = "https://api.flutterwave.com"
	defaultSMTPPort           = 587
	defaultMailFrom           = "orders@deeshop-app.com"
	defaultMailReplyTo        = "no_reply@deeshop-app.com"
	defaultNotifyInterval     = 3 * time.Second
	defaultNotifyBatch        = 16
	defaultNotifyWorkers      = 2
	defaultNotifyAttempts     = 5
)

// flag name -> config key
var flagKeys = map[string]string{
	"address":          keyRunAddress,
	"database":         keyDatabaseURI,
	"jwt-secret":       keyJWTSecret,
	"shutdown-timeout": keyShutdownTimeout,
	"log-level":        keyLogLevel,
	"frontend-url":     keyFrontendURL,
	"currency":         keyStripeCurrency,
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP("address", "a", defaultRunAddress, "HTTP server listen address")
	fs.StringP("database", "d", "", "PostgreSQL DSN")
	fs.String("jwt-secret", defaultJWTSecret, "Secret for signing auth tokens")
	fs.String("shutdown-timeout", defaultShutdownTimeout.String(), "Graceful shutdown timeout")
	fs.String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String("frontend-url", "", "Frontend origin used for CORS and payment redirects")
	fs.String("currency", defaultCurrency, "Currency for card payments")
	fs.String("config", "", "Optional configuration file")
}

// Load resolves configuration with precedence flag > env > config file > default.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		RunAddress:  v.GetString(keyRunAddress),
		DatabaseURI: v.GetString(keyDatabaseURI),
		JWTSecret:   v.GetString(keyJWTSecret),
		LogLevel:    v.GetString(keyLogLevel),
		FrontendURL: strings.TrimRight(v.GetString(keyFrontendURL), "/"),
		Stripe: StripeConfig{
			SecretKey: v.GetString(keyStripeSecret),
			Currency:  strings.ToLower(v.GetString(keyStripeCurrency)),
			APIURL:    strings.TrimRight(v.GetString(keyStripeAPIURL), "/"),
		},
		Flutterwave: FlutterwaveConfig{
			SecretKey: v.GetString(keyFlwSecret),
			BaseURL:   strings.TrimRight(v.GetString(keyFlwBaseURL), "/"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString(keySMTPHost),
			Port:     v.GetInt(keySMTPPort),
			Username: v.GetString(keySMTPUsername),
			Password: v.GetString(keySMTPPassword),
		},
		Mail: MailConfig{
			From:    v.GetString(keyMailFrom),
			ReplyTo: v.GetString(keyMailReplyTo),
		},
		Notify: NotifyConfig{
			BatchSize:   v.GetInt(keyNotifyBatch),
			Workers:     v.GetInt(keyNotifyWorkers),
			MaxAttempts: v.GetInt(keyNotifyAttempts),
		},
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(v.GetString(keyShutdownTimeout)); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.Notify.PollInterval, err = time.ParseDuration(v.GetString(keyNotifyInterval)); err != nil {
		return nil, fmt.Errorf("invalid notify poll interval: %w", err)
	}

	if secretFile := v.GetString(keyJWTSecretFile); secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	normalize(cfg)

	if cfg.DatabaseURI == "" {
		return nil, errors.New("database URI must be provided")
	}

	return cfg, nil
}

// ValidateServer checks the keys only the HTTP service needs.
func (c *Config) ValidateServer() error {
	var missing []string
	if c.FrontendURL == "" {
		missing = append(missing, keyFrontendURL)
	}
	if c.Stripe.SecretKey == "" {
		missing = append(missing, keyStripeSecret)
	}
	if c.Flutterwave.SecretKey == "" {
		missing = append(missing, keyFlwSecret)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyRunAddress, defaultRunAddress)
	v.SetDefault(keyJWTSecret, defaultJWTSecret)
	v.SetDefault(keyShutdownTimeout, defaultShutdownTimeout.String())
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyStripeCurrency, defaultCurrency)
	v.SetDefault(keyFlwBaseURL, defaultFlutterwaveBaseURL)
	v.SetDefault(keySMTPPort, defaultSMTPPort)
	v.SetDefault(keyMailFrom, defaultMailFrom)
	v.SetDefault(keyMailReplyTo, defaultMailReplyTo)
	v.SetDefault(keyNotifyInterval, defaultNotifyInterval.String())
	v.SetDefault(keyNotifyBatch, defaultNotifyBatch)
	v.SetDefault(keyNotifyWorkers, defaultNotifyWorkers)
	v.SetDefault(keyNotifyAttempts, defaultNotifyAttempts)

	// registered so AutomaticEnv lookups also cover unset keys
	for _, key := range []string{keyDatabaseURI, keyFrontendURL, keyStripeSecret, keyStripeAPIURL, keyFlwSecret,
		keySMTPHost, keySMTPUsername, keySMTPPassword, keyJWTSecretFile} {
		v.SetDefault(key, "")
	}
}

func normalize(cfg *Config) {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Notify.PollInterval <= 0 {
		cfg.Notify.PollInterval = defaultNotifyInterval
	}
	if cfg.Notify.BatchSize <= 0 {
		cfg.Notify.BatchSize = defaultNotifyBatch
	}
	if cfg.Notify.Workers <= 0 {
		cfg.Notify.Workers = defaultNotifyWorkers
	}
	if cfg.Notify.MaxAttempts <= 0 {
		cfg.Notify.MaxAttempts = defaultNotifyAttempts
	}
	if cfg.SMTP.Port <= 0 {
		cfg.SMTP.Port = defaultSMTPPort
	}
	if cfg.Stripe.Currency == "" {
		cfg.Stripe.Currency = defaultCurrency
	}
}

package main

import (
	"errors"
	"strings"
	"time"

	"secure_finance_manager/internal/handlers"
	"secure_finance_manager/internal/logger"
	"secure_finance_manager/internal/server"

	"github.com/spf13/viper"
)

const envPrefix = "FINANCE"

type appConfig struct {
	Port             string
	DBPath           string
	BasePath         string
	LogLevel         string
	SigningKey       string
	TokenTTL         time.Duration
	CryptoPassphrase string
	CryptoSalt       string
	Server           server.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "finance.db")
	v.SetDefault("api.base_path", handlers.DefaultBasePath)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
}

// newViper reads configs/config.yml when present. Every key can be
// overridden from the environment, e.g. FINANCE_DB_PATH for db.path.
func newViper(configPaths ...string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

func configFrom(v *viper.Viper) appConfig {
	return appConfig{
		Port:             v.GetString("port"),
		DBPath:           v.GetString("db.path"),
		BasePath:         v.GetString("api.base_path"),
		LogLevel:         v.GetString("log.level"),
		SigningKey:       v.GetString("auth.signing_key"),
		TokenTTL:         v.GetDuration("auth.token_ttl"),
		CryptoPassphrase: v.GetString("crypto.passphrase"),
		CryptoSalt:       v.GetString("crypto.salt"),
		Server: server.Config{
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
		},
	}
}

func loadConfig() (appConfig, error) {
	v, err := newViper("configs")
	if err != nil {
		return appConfig{}, err
	}
	cfg := configFrom(v)
	if err := cfg.validate(); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}

func (c appConfig) validate() error {
	if c.SigningKey == "" {
		return errors.New("auth.signing_key is required")
	}
	if c.CryptoPassphrase == "" {
		return errors.New("crypto.passphrase is required")
	}
	return nil
}

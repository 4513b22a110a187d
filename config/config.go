// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	insecureAccessSecret  = "access-random"
	insecureRefreshSecret = "refresh-random"
)

var (
	configPath = pflag.String("config", "", "Path to the config file, defaults to ./config.toml")

	validLogLevels     = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers     = []string{"sqlite", "postgres"}
	validCacheTypes    = []string{"memory", "redis"}
	validOAuthProvider = []string{"google", "facebook"}
)

// Setup parses command line flags and loads the configuration. Function will
// return an error if something is critically wrong and the application can't
// run because of that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	return Load(*configPath)
}

// Load reads the config file at path (or ./config.toml when empty), binds
// environment variables and validates the result. Environment variables win
// over the file. A missing default config file is fine.
func Load(path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "HOST_PORT", "PORT")
	v.BindEnv("host.cors_origins", "HOST_CORS_ORIGINS")
	v.BindEnv("host.read_timeout", "HOST_READ_TIMEOUT")
	v.BindEnv("host.write_timeout", "HOST_WRITE_TIMEOUT")
	v.BindEnv("host.secure_cookies", "HOST_SECURE_COOKIES")

	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")

	v.BindEnv("jwt.access_secret", "JWT_ACCESS_SECRET")
	v.BindEnv("jwt.refresh_secret", "JWT_REFRESH_SECRET")
	v.BindEnv("jwt.access_ttl", "JWT_ACCESS_TTL")
	v.BindEnv("jwt.refresh_ttl", "JWT_REFRESH_TTL")
	v.BindEnv("jwt.insecure_defaults", "JWT_INSECURE_DEFAULTS")

	v.BindEnv("mail.host", "MAIL_HOST")
	v.BindEnv("mail.port", "MAIL_PORT")
	v.BindEnv("mail.username", "MAIL_USERNAME", "EMAIL_USERNAME")
	v.BindEnv("mail.password", "MAIL_PASSWORD", "EMAIL_PASSWORD")
	v.BindEnv("mail.sender_address", "MAIL_SENDER_ADDRESS")

	v.BindEnv("oauth.success_url", "OAUTH_SUCCESS_URL")
	v.BindEnv("oauth.google.client_id", "OAUTH_GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_ID")
	v.BindEnv("oauth.google.client_secret", "OAUTH_GOOGLE_CLIENT_SECRET", "GOOGLE_CLIENT_SECRET")
	v.BindEnv("oauth.google.callback_url", "OAUTH_GOOGLE_CALLBACK_URL", "GOOGLE_CALLBACK_URL")
	v.BindEnv("oauth.facebook.client_id", "OAUTH_FACEBOOK_CLIENT_ID", "FACEBOOK_CLIENT_ID")
	v.BindEnv("oauth.facebook.client_secret", "OAUTH_FACEBOOK_CLIENT_SECRET", "FACEBOOK_CLIENT_SECRET")
	v.BindEnv("oauth.facebook.callback_url", "OAUTH_FACEBOOK_CALLBACK_URL", "FACEBOOK_CALLBACK_URL")

	v.BindEnv("cache.type", "CACHE_TYPE")
	v.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR", "REDIS_ADDR")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("host.read_timeout", "10s")
	v.SetDefault("host.write_timeout", "10s")
	v.SetDefault("host.secure_cookies", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "auth.db")

	v.SetDefault("jwt.access_ttl", "1h")
	v.SetDefault("jwt.refresh_ttl", "168h")
	v.SetDefault("jwt.insecure_defaults", false)

	v.SetDefault("mail.port", 587)

	v.SetDefault("oauth.success_url", "http://localhost:3000/auth-success")

	v.SetDefault("cache.type", "memory")

	if err := v.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	return validate()
}

func validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 || v.GetInt("host.port") > 65535 {
		return errors.New("invalid port provided")
	}

	if v.GetDuration("host.read_timeout") <= 0 {
		return errors.New("host.read_timeout must be bigger than 0")
	}

	if v.GetDuration("host.write_timeout") <= 0 {
		return errors.New("host.write_timeout must be bigger than 0")
	}

	if !slices.Contains(validDBDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("no database dsn provided")
	}

	if err := validateSecrets(); err != nil {
		return err
	}

	if v.GetDuration("jwt.access_ttl") <= 0 {
		return errors.New("jwt.access_ttl must be bigger than 0")
	}

	if v.GetDuration("jwt.refresh_ttl") <= 0 {
		return errors.New("jwt.refresh_ttl must be bigger than 0")
	}

	if v.GetString("mail.host") == "" {
		zap.L().Warn("No mail.host specified, reset codes will only be logged")
	} else if v.GetInt("mail.port") <= 0 {
		return errors.New("invalid mail port provided")
	}

	for _, p := range validOAuthProvider {
		if v.GetString("oauth."+p+".client_id") == "" {
			continue
		}

		if v.GetString("oauth."+p+".client_secret") == "" {
			return fmt.Errorf("no %s client secret provided", p)
		}

		if v.GetString("oauth."+p+".callback_url") == "" {
			return fmt.Errorf("no %s callback url provided", p)
		}
	}

	if !slices.Contains(validCacheTypes, v.GetString("cache.type")) {
		return errors.New("invalid cache type provided")
	}

	if v.GetString("cache.type") == "redis" && v.GetString("cache.redis_addr") == "" {
		return errors.New("no redis address provided")
	}

	return nil
}

// validateSecrets refuses to start without both signing secrets, unless
// insecure defaults were explicitly asked for
func validateSecrets() error {
	access := v.GetString("jwt.access_secret")
	refresh := v.GetString("jwt.refresh_secret")

	if access == "" || refresh == "" {
		if !v.GetBool("jwt.insecure_defaults") {
			return errors.New("jwt.access_secret and jwt.refresh_secret must both be set")
		}

		zap.L().Warn("Using insecure default JWT secrets, never do this in production")

		if access == "" {
			v.Set("jwt.access_secret", insecureAccessSecret)
		}

		if refresh == "" {
			v.Set("jwt.refresh_secret", insecureRefreshSecret)
		}
	}

	if v.GetString("jwt.access_secret") == v.GetString("jwt.refresh_secret") {
		return errors.New("jwt.access_secret and jwt.refresh_secret must differ")
	}

	return nil
}

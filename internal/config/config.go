package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port             string
	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseSSLMode  string
	SessionKey       []byte
	JwtSigningKey    []byte
	Env              string // either prod or dev, dev disables secure headers and binds localhost
	SentryDSN        string // optional, error reports are skipped when empty
	EmailAPIKey      string // optional, application receipt emails are skipped when empty
	NoReplyEmail     string
	SupportEmail     string
	SiteName         string
	SiteHost         string
}

func LoadConfig() (Config, error) {
	// .env is a local dev convenience, env vars win in prod
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	databaseUser := os.Getenv("DATABASE_USER")
	if databaseUser == "" {
		return Config{}, fmt.Errorf("DATABASE_USER cannot be empty")
	}
	databasePassword := os.Getenv("DATABASE_PASSWORD")
	if databasePassword == "" {
		return Config{}, fmt.Errorf("DATABASE_PASSWORD cannot be empty")
	}
	databaseHost := os.Getenv("DATABASE_HOST")
	if databaseHost == "" {
		return Config{}, fmt.Errorf("DATABASE_HOST cannot be empty")
	}
	databasePort := os.Getenv("DATABASE_PORT")
	if databasePort == "" {
		return Config{}, fmt.Errorf("DATABASE_PORT cannot be empty")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return Config{}, fmt.Errorf("DATABASE_NAME cannot be empty")
	}
	databaseSSLMode := os.Getenv("DATABASE_SSL_MODE")
	if databaseSSLMode == "" {
		return Config{}, fmt.Errorf("DATABASE_SSL_MODE cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to decode session key")
	}
	jwtSigningKeyString := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKeyString == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKeyString)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to decode jwt signing key")
	}
	env := os.Getenv("ENV")
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		return Config{}, fmt.Errorf("SITE_NAME cannot be empty")
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		return Config{}, fmt.Errorf("SITE_HOST cannot be empty")
	}
	return Config{
		Port:             port,
		DatabaseUser:     databaseUser,
		DatabasePassword: databasePassword,
		DatabaseHost:     databaseHost,
		DatabasePort:     databasePort,
		DatabaseName:     databaseName,
		DatabaseSSLMode:  databaseSSLMode,
		SessionKey:       sessionKeyBytes,
		JwtSigningKey:    jwtSigningKeyBytes,
		Env:              env,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		EmailAPIKey:      os.Getenv("EMAIL_API_KEY"),
		NoReplyEmail:     os.Getenv("NO_REPLY_EMAIL"),
		SupportEmail:     os.Getenv("SUPPORT_EMAIL"),
		SiteName:         siteName,
		SiteHost:         siteHost,
	}, nil
}

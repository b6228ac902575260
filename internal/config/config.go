package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	SurveyCollection             string
	UserCollection               string
	FailedNotificationCollection string
	Timeout                      time.Duration
	ServerLog                    *log.Logger
	JWTConfigs                   []JWTConfig
	JWTAudience                  string
	MessengerEndpoint            string
	MessengerDestination         string
	DiscordDestination           string
	SlackDestination             string
	MessengerTimeout             time.Duration
	SurveyBaseURL                string
	AllowedOrigins               []string
}

// ErrNoJWTSecrets is returned when neither identity provider secret is set.
var ErrNoJWTSecrets = errors.New("JWT secrets not configured. Set AUTH_TWITTER_JWT_SECRET or AUTH_LINE_JWT_SECRET")

// Store is the Mongo connection and collection layout shared by cmd/api and cmd/seed.
type Store struct {
	MongoURI                     string        `env:"MONGO_URI" envDefault:"mongodb://mongo:27017"`
	MongoDatabase                string        `env:"MONGO_DB" envDefault:"fake-survey-generator"`
	SurveyCollection             string        `env:"SURVEY_COLLECTION" envDefault:"surveys"`
	UserCollection               string        `env:"USER_COLLECTION" envDefault:"users"`
	FailedNotificationCollection string        `env:"FAILED_NOTIFICATION_COLLECTION" envDefault:"failed_notifications"`
	MongoConnectTimeout          time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

// ParseStore reads only the Mongo settings. It does not require JWT secrets.
func ParseStore() (Store, error) {
	var store Store
	if err := env.Parse(&store); err != nil {
		return Store{}, fmt.Errorf("parse env: %w", err)
	}
	return store, nil
}

type rawEnv struct {
	Store

	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	LineJWTSecret      string `env:"AUTH_LINE_JWT_SECRET"`
	LineJWTIssuer      string `env:"AUTH_LINE_JWT_ISSUER" envDefault:"fake-survey-auth"`
	TwitterJWTSecret   string `env:"AUTH_TWITTER_JWT_SECRET"`
	TwitterJWTIssuer   string `env:"AUTH_TWITTER_JWT_ISSUER" envDefault:"auth-twitter"`
	JWTAudience        string `env:"AUTH_JWT_AUDIENCE"`
	LineJWTAudience    string `env:"AUTH_LINE_JWT_AUDIENCE"`
	TwitterJWTAudience string `env:"AUTH_TWITTER_JWT_AUDIENCE"`

	MessengerEndpoint    string        `env:"MESSENGER_GATEWAY_URL" envDefault:"http://messenger-gateway:3000"`
	MessengerDestination string        `env:"MESSENGER_GATEWAY_DESTINATION" envDefault:"line"`
	DiscordDestination   string        `env:"MESSENGER_DISCORD_INCOMING_DESTINATION"`
	SlackDestination     string        `env:"MESSENGER_SLACK_DESTINATION"`
	MessengerTimeout     time.Duration `env:"MESSENGER_GATEWAY_TIMEOUT" envDefault:"3s"`

	SurveyBaseURL  string   `env:"SURVEY_BASE_URL"`
	AllowedOrigins []string `env:"API_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads environment variables and returns a fully populated Config.
// It exits the process when the configuration is unusable.
func Load() Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatal(err)
	}
	cfg.ServerLog.Printf("loaded config: surveyBaseURL=%q messengerEndpoint=%q destination=%q", cfg.SurveyBaseURL, cfg.MessengerEndpoint, cfg.MessengerDestination)
	return cfg
}

// Parse builds a Config from the environment without exiting.
func Parse() (Config, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(raw.LineJWTSecret); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: strings.TrimSpace(raw.LineJWTIssuer), Secret: []byte(secret)})
	}
	if secret := strings.TrimSpace(raw.TwitterJWTSecret); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: strings.TrimSpace(raw.TwitterJWTIssuer), Secret: []byte(secret)})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, ErrNoJWTSecrets
	}

	return Config{
		Addr:                         raw.Addr,
		MongoURI:                     raw.MongoURI,
		MongoDatabase:                raw.MongoDatabase,
		SurveyCollection:             raw.SurveyCollection,
		UserCollection:               raw.UserCollection,
		FailedNotificationCollection: raw.FailedNotificationCollection,
		Timeout:                      raw.MongoConnectTimeout,
		ServerLog:                    NewLogger(),
		JWTConfigs:                   jwtConfigs,
		JWTAudience:                  firstNonEmpty(raw.JWTAudience, raw.LineJWTAudience, raw.TwitterJWTAudience),
		MessengerEndpoint:            strings.TrimRight(strings.TrimSpace(raw.MessengerEndpoint), "/"),
		MessengerDestination:         strings.TrimSpace(raw.MessengerDestination),
		DiscordDestination:           strings.TrimSpace(raw.DiscordDestination),
		SlackDestination:             strings.TrimSpace(raw.SlackDestination),
		MessengerTimeout:             raw.MessengerTimeout,
		SurveyBaseURL:                strings.TrimSpace(raw.SurveyBaseURL),
		AllowedOrigins:               trimList(raw.AllowedOrigins, []string{"*"}),
	}, nil
}

// NewLogger returns the service-wide logger.
func NewLogger() *log.Logger {
	return log.New(os.Stdout, "[fake-survey-api] ", log.LstdFlags|log.Lshortfile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func trimList(values []string, fallback []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

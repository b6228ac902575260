package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_LINE_JWT_SECRET", "")
	t.Setenv("AUTH_TWITTER_JWT_SECRET", "   ")

	_, err := Parse()
	if !errors.Is(err, ErrNoJWTSecrets) {
		t.Fatalf("expected ErrNoJWTSecrets, got %v", err)
	}
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("AUTH_LINE_JWT_SECRET", "line-secret")
	t.Setenv("AUTH_TWITTER_JWT_SECRET", "")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.SurveyCollection != "surveys" || cfg.UserCollection != "users" {
		t.Fatalf("unexpected collections: %q %q", cfg.SurveyCollection, cfg.UserCollection)
	}
	if cfg.MessengerDestination != "line" || cfg.MessengerTimeout != 3*time.Second {
		t.Fatalf("unexpected messenger defaults: %q %v", cfg.MessengerDestination, cfg.MessengerTimeout)
	}
	if len(cfg.JWTConfigs) != 1 || cfg.JWTConfigs[0].Issuer != "fake-survey-auth" || string(cfg.JWTConfigs[0].Secret) != "line-secret" {
		t.Fatalf("unexpected jwt configs: %+v", cfg.JWTConfigs)
	}
	if cfg.ServerLog == nil || cfg.ServerLog.Prefix() != "[fake-survey-api] " {
		t.Fatal("expected prefixed server logger")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("AUTH_LINE_JWT_SECRET", "line-secret")
	t.Setenv("AUTH_TWITTER_JWT_SECRET", "twitter-secret")
	t.Setenv("AUTH_TWITTER_JWT_ISSUER", "custom-twitter")
	t.Setenv("AUTH_JWT_AUDIENCE", "")
	t.Setenv("AUTH_LINE_JWT_AUDIENCE", "surveys-web")
	t.Setenv("API_ALLOWED_ORIGINS", " https://a.example , ,https://b.example ")
	t.Setenv("MESSENGER_GATEWAY_URL", "http://gateway:3000/")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "2s")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cfg.JWTConfigs) != 2 || cfg.JWTConfigs[1].Issuer != "custom-twitter" {
		t.Fatalf("unexpected jwt configs: %+v", cfg.JWTConfigs)
	}
	if cfg.JWTAudience != "surveys-web" {
		t.Fatalf("audience = %q, want provider fallback", cfg.JWTAudience)
	}
	if strings.Join(cfg.AllowedOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.MessengerEndpoint != "http://gateway:3000" {
		t.Fatalf("endpoint = %q", cfg.MessengerEndpoint)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("AUTH_LINE_JWT_SECRET", "line-secret")
	t.Setenv("MESSENGER_GATEWAY_TIMEOUT", "soon")

	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

// TestParseStoreSharesMongoDefaults ensures the seeder and the API read the same Mongo keys.
func TestParseStoreSharesMongoDefaults(t *testing.T) {
	t.Setenv("AUTH_LINE_JWT_SECRET", "")
	t.Setenv("AUTH_TWITTER_JWT_SECRET", "")
	t.Setenv("SURVEY_COLLECTION", "seeded_surveys")

	store, err := ParseStore()
	if err != nil {
		t.Fatalf("ParseStore returned error: %v", err)
	}
	if store.MongoURI != "mongodb://mongo:27017" || store.MongoDatabase != "fake-survey-generator" {
		t.Fatalf("unexpected mongo defaults: %q %q", store.MongoURI, store.MongoDatabase)
	}
	if store.SurveyCollection != "seeded_surveys" || store.UserCollection != "users" || store.FailedNotificationCollection != "failed_notifications" {
		t.Fatalf("unexpected collections: %+v", store)
	}
	if store.MongoConnectTimeout != 10*time.Second {
		t.Fatalf("timeout = %v", store.MongoConnectTimeout)
	}

	t.Setenv("AUTH_LINE_JWT_SECRET", "line-secret")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.SurveyCollection != store.SurveyCollection || cfg.MongoURI != store.MongoURI {
		t.Fatalf("Parse and ParseStore disagree: %q/%q vs %q/%q", cfg.SurveyCollection, cfg.MongoURI, store.SurveyCollection, store.MongoURI)
	}
}

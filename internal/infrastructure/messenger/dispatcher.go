package messenger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

const (
	adminNotificationTarget = "admin_notification"
	discordAttempts         = 3
	defaultRetryDelay       = 200 * time.Millisecond
	defaultSendTimeout      = 5 * time.Second
)

// FailureStore は全チャネルへの配送に失敗した通知を保存する。
type FailureStore interface {
	Save(ctx context.Context, target string, payload map[string]any, errText string, attempts int) error
}

// Config は Dispatcher の依存と宛先をまとめる。
type Config struct {
	HTTPClient         *http.Client
	Endpoint           string
	Destination        string
	DiscordDestination string
	SlackDestination   string
	SurveyBaseURL      string
	Logger             *log.Logger
	Failures           FailureStore
	// RetryDelay は Discord 再送の間隔。0 以下なら 200ms。
	RetryDelay time.Duration
}

// Dispatcher はドメインイベントをメッセンジャーゲートウェイ経由の通知へ変換する。
type Dispatcher struct {
	httpClient         *http.Client
	endpoint           string
	destination        string
	discordDestination string
	slackDestination   string
	surveyBaseURL      string
	logger             *log.Logger
	failures           FailureStore
	retryDelay         time.Duration
}

func NewDispatcher(cfg Config) *Dispatcher {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultSendTimeout}
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return &Dispatcher{
		httpClient:         client,
		endpoint:           strings.TrimSpace(cfg.Endpoint),
		destination:        strings.TrimSpace(cfg.Destination),
		discordDestination: strings.TrimSpace(cfg.DiscordDestination),
		slackDestination:   strings.TrimSpace(cfg.SlackDestination),
		surveyBaseURL:      strings.TrimSpace(cfg.SurveyBaseURL),
		logger:             cfg.Logger,
		failures:           cfg.Failures,
		retryDelay:         delay,
	}
}

// Dispatch はイベントを順に処理する。作成者への受付通知の失敗のみを返し、
// 管理チャネルの失敗はログと FailureStore に残す。
func (d *Dispatcher) Dispatch(ctx context.Context, events []domain.DomainEvent) error {
	var errs []error
	for _, event := range events {
		switch e := event.(type) {
		case domain.SurveyCreatedDomainEvent:
			if err := d.notifySurveyCreated(ctx, e.Survey); err != nil {
				errs = append(errs, err)
			}
		default:
			d.logf("未対応のイベントを無視: %s", event.EventName())
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) notifySurveyCreated(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return nil
	}

	var receiptErr error
	if owner := survey.Owner(); owner != nil && !owner.ExternalUserID.IsZero() {
		message := buildReceiptMessage(survey, d.surveyBaseURL)
		if err := d.sendMessengerMessage(ctx, d.destination, owner.ExternalUserID.Value(), message); err != nil {
			receiptErr = fmt.Errorf("send survey receipt: %w", err)
		}
	}

	d.notifyAdminChannels(ctx, survey)
	return receiptErr
}

func (d *Dispatcher) notifyAdminChannels(ctx context.Context, survey *domain.Survey) {
	if d.discordDestination == "" && d.slackDestination == "" {
		return
	}

	identifier := survey.ID()
	if identifier == "" {
		identifier = ownerExternalID(survey)
	}
	if identifier == "" {
		identifier = "admin"
	}

	var discordErr, slackErr error
	attempts := 0

	if d.discordDestination != "" {
		message := buildDiscordSurveyMessage(survey, d.surveyBaseURL)
		discordErr = d.sendMessengerWithRetry(ctx, d.discordDestination, identifier, message, discordAttempts, d.retryDelay)
		attempts += discordAttempts
		if discordErr == nil {
			return
		}
		d.logf("Discord通知の送信に失敗: %v", discordErr)
	}

	if d.slackDestination != "" {
		message := buildSlackSurveyMessage(survey, d.surveyBaseURL)
		slackErr = d.sendMessengerWithRetry(ctx, d.slackDestination, identifier, message, 1, 0)
		attempts++
		if slackErr == nil {
			return
		}
		d.logf("Slack通知の送信に失敗: %v", slackErr)
	}

	d.persistNotificationFailure(ctx, identifier, survey, errors.Join(discordErr, slackErr), attempts)
}

func (d *Dispatcher) persistNotificationFailure(ctx context.Context, identifier string, survey *domain.Survey, err error, attempts int) {
	if d.failures == nil || err == nil {
		return
	}
	payload := map[string]any{
		"surveyId":            survey.ID(),
		"ownerId":             survey.OwnerID(),
		"externalUserId":      ownerExternalID(survey),
		"topic":               survey.Topic().Value(),
		"numberOfRespondents": survey.NumberOfRespondents(),
		"identifier":          identifier,
	}
	if saveErr := d.failures.Save(ctx, adminNotificationTarget, payload, err.Error(), attempts); saveErr != nil {
		d.logf("failed_notifications への保存に失敗: %v", saveErr)
	}
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf(format, args...)
	}
}

func ownerExternalID(survey *domain.Survey) string {
	owner := survey.Owner()
	if owner == nil {
		return ""
	}
	return owner.ExternalUserID.Value()
}

package public

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/interfaces/http/common"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

type stubCommands struct {
	received application.CreateSurveyCommand
	result   *domain.Survey
	err      error
}

func (s *stubCommands) Create(_ context.Context, cmd application.CreateSurveyCommand) (*domain.Survey, error) {
	s.received = cmd
	return s.result, s.err
}

type stubQueries struct {
	detail      *domain.Survey
	list        []*domain.Survey
	err         error
	paging      application.Paging
	ownerLookup string
}

func (s *stubQueries) Detail(_ context.Context, id string) (*domain.Survey, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.detail == nil || s.detail.ID() != id {
		return nil, application.ErrNotFound
	}
	return s.detail, nil
}

func (s *stubQueries) ListByOwner(_ context.Context, externalUserID string, paging application.Paging) ([]*domain.Survey, error) {
	s.ownerLookup = externalUserID
	s.paging = paging
	return s.list, s.err
}

func (s *stubQueries) ListRecent(_ context.Context, paging application.Paging) ([]*domain.Survey, error) {
	s.paging = paging
	return s.list, s.err
}

type stubUsers struct {
	registered application.RegisterUserCommand
	user       *domain.User
	err        error
	exists     bool
}

func (s *stubUsers) Register(_ context.Context, cmd application.RegisterUserCommand) (*domain.User, error) {
	s.registered = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{
		ID:             "user-1",
		DisplayName:    domain.MustNonEmptyString(cmd.DisplayName),
		EmailAddress:   domain.MustNonEmptyString(cmd.EmailAddress),
		ExternalUserID: domain.MustNonEmptyString(cmd.ExternalUserID),
	}, nil
}

func (s *stubUsers) Me(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUsers) IsRegistered(context.Context, string) (bool, error) {
	return s.exists, s.err
}

// fakeAuth trusts the X-Test-User header as the token subject.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := r.Header.Get("X-Test-User")
		if subject == "" {
			common.WriteError(nil, w, http.StatusUnauthorized, "missing token")
			return
		}
		user := common.AuthenticatedUser{ID: subject, Name: "Test User", Email: "test@example.com"}
		next.ServeHTTP(w, r.WithContext(common.ContextWithUser(r.Context(), user)))
	})
}

type fixture struct {
	commands *stubCommands
	queries  *stubQueries
	users    *stubUsers
	router   chi.Router
}

func newFixture() *fixture {
	f := &fixture{commands: &stubCommands{}, queries: &stubQueries{}, users: &stubUsers{}}
	f.router = chi.NewRouter()
	NewHandler(Config{
		SurveyCommands: f.commands,
		SurveyQueries:  f.queries,
		Users:          f.users,
	}).Register(f.router, fakeAuth)
	return f
}

func (f *fixture) do(method, target, body, subject string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if subject != "" {
		req.Header.Set("X-Test-User", subject)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type lowRand struct{}

func (lowRand) Intn(int) int { return 0 }

func sampleSurvey(t *testing.T) *domain.Survey {
	t.Helper()
	owner := &domain.User{ID: "owner-1"}
	survey, err := domain.NewSurvey(owner, domain.MustNonEmptyString("Cats or dogs?"), 10, domain.MustNonEmptyString("Pet owners"))
	if err != nil {
		t.Fatalf("NewSurvey returned error: %v", err)
	}
	for _, option := range []struct {
		text      string
		preferred int
	}{{"Cats", 7}, {"Dogs", 0}} {
		if err := survey.AddSurveyOption(domain.MustNonEmptyString(option.text), option.preferred); err != nil {
			t.Fatalf("AddSurveyOption returned error: %v", err)
		}
	}
	if err := survey.CalculateOutcome(lowRand{}); err != nil {
		t.Fatalf("CalculateOutcome returned error: %v", err)
	}
	survey.Stamp("line-1", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	survey.AssignID("survey-1")
	return survey
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestSurveyCreateReturnsCreatedSurvey(t *testing.T) {
	f := newFixture()
	f.commands.result = sampleSurvey(t)

	body := `{"topic":"Cats or dogs?","numberOfRespondents":10,"respondentType":"Pet owners","oneSided":true,
		"options":[{"optionText":"Cats","preferredNumberOfVotes":7},{"optionText":"Dogs"}]}`
	rec := f.do(http.MethodPost, "/surveys", body, "line-1")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/surveys/survey-1" {
		t.Fatalf("Location = %q", loc)
	}

	cmd := f.commands.received
	if cmd.ExternalUserID != "line-1" || !cmd.OneSided || len(cmd.Options) != 2 || cmd.Options[0].PreferredNumberOfVotes != 7 {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	var resp surveyResponse
	decodeBody(t, rec, &resp)
	if resp.ID != "survey-1" || resp.OwnerID != "owner-1" || !resp.IsRigged {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Options) != 2 || resp.Options[0].NumberOfVotes != 7 || resp.Options[1].NumberOfVotes != 3 {
		t.Fatalf("unexpected options: %+v", resp.Options)
	}
	if resp.CreatedBy != "line-1" || resp.CreatedOn == nil {
		t.Fatalf("audit not rendered: %+v", resp)
	}
}

func TestSurveyCreateRequiresAuth(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodPost, "/surveys", `{}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSurveyCreateRejectsMalformedBody(t *testing.T) {
	f := newFixture()
	for name, body := range map[string]string{
		"not json":      `{"topic":`,
		"unknown field": `{"topic":"x","colour":"red"}`,
		"wrong type":    `{"numberOfRespondents":"ten"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/surveys", body, "line-1")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

// TestServiceErrorMapping ensures each failure class maps to a stable status.
func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "domain", err: domain.NewSurveyDomainError("Duplicate survey option."), status: http.StatusBadRequest, message: "Duplicate survey option."},
		{name: "wrapped domain", err: errors.Join(errors.New("ctx"), domain.NewSurveyDomainError("Topic must not be empty.")), status: http.StatusBadRequest, message: "Topic must not be empty."},
		{name: "not registered", err: application.ErrUserNotRegistered, status: http.StatusForbidden},
		{name: "not found", err: application.ErrNotFound, status: http.StatusNotFound},
		{name: "already registered", err: application.ErrUserAlreadyRegistered, status: http.StatusConflict},
		{name: "unexpected", err: errors.New("mongo exploded"), status: http.StatusInternalServerError, message: errInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.commands.err = tc.err
			rec := f.do(http.MethodPost, "/surveys", `{"topic":"x"}`, "line-1")
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.message == "" {
				return
			}
			var body map[string]string
			decodeBody(t, rec, &body)
			if body["error"] != tc.message {
				t.Fatalf("error = %q, want %q", body["error"], tc.message)
			}
		})
	}
}

func TestSurveyDetail(t *testing.T) {
	f := newFixture()
	f.queries.detail = sampleSurvey(t)

	rec := f.do(http.MethodGet, "/surveys/survey-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp surveyResponse
	decodeBody(t, rec, &resp)
	if resp.Topic != "Cats or dogs?" || resp.NumberOfRespondents != 10 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	rec = f.do(http.MethodGet, "/surveys/missing", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing survey status = %d", rec.Code)
	}
}

func TestSurveyListUsesPagingQuery(t *testing.T) {
	f := newFixture()
	f.queries.list = []*domain.Survey{sampleSurvey(t)}

	rec := f.do(http.MethodGet, "/surveys?page=2&limit=5", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.queries.paging != (application.Paging{Page: 2, Limit: 5}) {
		t.Fatalf("paging = %+v", f.queries.paging)
	}
	var resp surveyListResponse
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 1 || resp.Page != 2 || resp.Limit != 5 {
		t.Fatalf("unexpected list: %+v", resp)
	}

	f.do(http.MethodGet, "/surveys?page=zero&limit=-1", "", "")
	if f.queries.paging != (application.Paging{Page: 1, Limit: common.DefaultPageLimit}) {
		t.Fatalf("invalid query should fall back to defaults, got %+v", f.queries.paging)
	}
}

// TestSurveyListEchoesAppliedPaging ensures the response reports the clamped page and limit.
func TestSurveyListEchoesAppliedPaging(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/surveys?page=9223372036854775807&limit=500", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp surveyListResponse
	decodeBody(t, rec, &resp)
	want := application.NormalizePaging(application.Paging{Page: math.MaxInt, Limit: 500})
	if resp.Limit != 100 || resp.Limit != want.Limit || resp.Page != want.Page {
		t.Fatalf("response paging = page %d limit %d, want %+v", resp.Page, resp.Limit, want)
	}
	if f.queries.paging != want {
		t.Fatalf("service paging = %+v, want %+v", f.queries.paging, want)
	}

	rec = f.do(http.MethodGet, "/users/me/surveys?limit=500", "", "line-9")
	decodeBody(t, rec, &resp)
	if resp.Limit != 100 || resp.Page != 1 {
		t.Fatalf("owner list paging = page %d limit %d", resp.Page, resp.Limit)
	}
}

func TestMySurveysUsesTokenSubject(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/users/me/surveys", "", "line-9")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.queries.ownerLookup != "line-9" {
		t.Fatalf("owner lookup = %q", f.queries.ownerLookup)
	}
	var resp surveyListResponse
	decodeBody(t, rec, &resp)
	if resp.Items == nil {
		t.Fatal("items must render as an empty array")
	}
}

func TestUserRegisterFallsBackToClaims(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodPost, "/users/register", "", "line-1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	want := application.RegisterUserCommand{ExternalUserID: "line-1", DisplayName: "Test User", EmailAddress: "test@example.com"}
	if f.users.registered != want {
		t.Fatalf("command = %+v, want %+v", f.users.registered, want)
	}

	rec = f.do(http.MethodPost, "/users/register", `{"displayName":"Override"}`, "line-1")
	if rec.Code != http.StatusCreated || f.users.registered.DisplayName != "Override" {
		t.Fatalf("body should override claims: %d %+v", rec.Code, f.users.registered)
	}
}

func TestUserRegisteredAndMe(t *testing.T) {
	f := newFixture()
	f.users.exists = true
	rec := f.do(http.MethodGet, "/users/me/registered", "", "line-1")
	var registered map[string]bool
	decodeBody(t, rec, &registered)
	if rec.Code != http.StatusOK || !registered["registered"] {
		t.Fatalf("unexpected registered response: %d %v", rec.Code, registered)
	}

	f.users.err = application.ErrUserNotRegistered
	rec = f.do(http.MethodGet, "/users/me", "", "line-1")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unregistered /users/me status = %d", rec.Code)
	}
}

func TestAuthVerify(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/auth/verify", "", "line-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Status string                   `json:"status"`
		User   common.AuthenticatedUser `json:"user"`
	}
	decodeBody(t, rec, &body)
	if body.Status != "ok" || body.User.ID != "line-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

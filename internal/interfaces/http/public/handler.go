package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
)

// Handler wires survey and user HTTP endpoints to application services.
type Handler struct {
	logger         *log.Logger
	surveyCommands application.SurveyCommandService
	surveyQueries  application.SurveyQueryService
	users          application.UserService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *log.Logger
	SurveyCommands application.SurveyCommandService
	SurveyQueries  application.SurveyQueryService
	Users          application.UserService
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:         cfg.Logger,
		surveyCommands: cfg.SurveyCommands,
		surveyQueries:  cfg.SurveyQueries,
		users:          cfg.Users,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/surveys", h.surveyListHandler())
	r.Get("/surveys/{id}", h.surveyDetailHandler())
	r.With(authMiddleware).Post("/surveys", h.surveyCreateHandler())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/users/me", h.userMeHandler())
		r.Get("/users/me/registered", h.userRegisteredHandler())
		r.Get("/users/me/surveys", h.mySurveysHandler())
		r.Post("/users/register", h.userRegisterHandler())
		r.Get("/auth/verify", h.authVerifyHandler())
	})
}

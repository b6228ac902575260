package public

import (
	"errors"
	"net/http"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/interfaces/http/common"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

const (
	errMissingPrincipal = "Could not read the authenticated user."
	errInternal         = "Something went wrong while processing the request."
)

// writeServiceError maps application and domain errors onto HTTP statuses.
// Only unexpected errors are logged; their text never reaches the client.
func (h *Handler) writeServiceError(w http.ResponseWriter, operation string, err error) {
	var domainErr *domain.SurveyDomainError
	switch {
	case errors.As(err, &domainErr):
		common.WriteError(h.logger, w, http.StatusBadRequest, domainErr.Message)
	case errors.Is(err, domain.ErrNilArgument):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrUserNotRegistered):
		common.WriteError(h.logger, w, http.StatusForbidden, "Register before creating or listing your surveys.")
	case errors.Is(err, application.ErrNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "Survey not found.")
	case errors.Is(err, application.ErrUserAlreadyRegistered):
		common.WriteError(h.logger, w, http.StatusConflict, "User is already registered.")
	default:
		if h.logger != nil {
			h.logger.Printf("%s failed: %v", operation, err)
		}
		common.WriteError(h.logger, w, http.StatusInternalServerError, errInternal)
	}
}

package public

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/interfaces/http/common"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
)

// userRegisterHandler はトークンのクレームから利用者を登録する。
// ボディは任意で、displayName / emailAddress をクレームより優先する。
func (h *Handler) userRegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, errMissingPrincipal)
			return
		}

		var req registerUserRequest
		if err := common.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("Malformed request body: %v", err))
			return
		}

		cmd := application.RegisterUserCommand{
			ExternalUserID: user.ID,
			DisplayName:    firstNonBlank(req.DisplayName, user.DisplayName()),
			EmailAddress:   firstNonBlank(req.EmailAddress, user.Email),
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		registered, err := h.users.Register(ctx, cmd)
		if err != nil {
			h.writeServiceError(w, "user register", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildUserResponse(registered))
	}
}

func (h *Handler) userMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, errMissingPrincipal)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		me, err := h.users.Me(ctx, user.ID)
		if err != nil {
			h.writeServiceError(w, "user lookup", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildUserResponse(me))
	}
}

func (h *Handler) userRegisteredHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, errMissingPrincipal)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		registered, err := h.users.IsRegistered(ctx, user.ID)
		if err != nil {
			h.writeServiceError(w, "user registration check", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"registered": registered})
	}
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

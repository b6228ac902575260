package public

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/interfaces/http/common"
	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/application"
)

// surveyCreateHandler はアンケートを生成し、結果をそのまま返す。
func (h *Handler) surveyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, errMissingPrincipal)
			return
		}

		var req createSurveyRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("Malformed request body: %v", err))
			return
		}

		cmd := application.CreateSurveyCommand{
			ExternalUserID:      user.ID,
			Topic:               req.Topic,
			NumberOfRespondents: req.NumberOfRespondents,
			RespondentType:      req.RespondentType,
			OneSided:            req.OneSided,
			Options:             make([]application.SurveyOptionCommand, 0, len(req.Options)),
		}
		for _, option := range req.Options {
			cmd.Options = append(cmd.Options, application.SurveyOptionCommand{
				OptionText:             option.OptionText,
				PreferredNumberOfVotes: option.PreferredNumberOfVotes,
			})
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		survey, err := h.surveyCommands.Create(ctx, cmd)
		if err != nil {
			h.writeServiceError(w, "survey create", err)
			return
		}

		w.Header().Set("Location", "/surveys/"+survey.ID())
		common.WriteJSON(h.logger, w, http.StatusCreated, buildSurveyResponse(survey))
	}
}

func (h *Handler) surveyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		survey, err := h.surveyQueries.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			h.writeServiceError(w, "survey detail", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSurveyResponse(survey))
	}
}

// surveyListHandler は新しい順のアンケート一覧。?page と ?limit でページングする。
func (h *Handler) surveyListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		paging := pagingFromQuery(r)
		surveys, err := h.surveyQueries.ListRecent(ctx, paging)
		if err != nil {
			h.writeServiceError(w, "survey list", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSurveyListResponse(surveys, paging.Page, paging.Limit))
	}
}

func (h *Handler) mySurveysHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, errMissingPrincipal)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		paging := pagingFromQuery(r)
		surveys, err := h.surveyQueries.ListByOwner(ctx, user.ID, paging)
		if err != nil {
			h.writeServiceError(w, "owner survey list", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSurveyListResponse(surveys, paging.Page, paging.Limit))
	}
}

// pagingFromQuery は ?page と ?limit を読み、サービスが実際に適用する値へ正規化する。
func pagingFromQuery(r *http.Request) application.Paging {
	query := r.URL.Query()
	page, _ := common.ParsePositiveInt(query.Get("page"), 1)
	limit, _ := common.ParsePositiveInt(query.Get("limit"), common.DefaultPageLimit)
	return application.NormalizePaging(application.Paging{Page: page, Limit: limit})
}

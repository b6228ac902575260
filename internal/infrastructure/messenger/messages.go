package messenger

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

func buildReceiptMessage(survey *domain.Survey, baseURL string) string {
	var builder strings.Builder
	builder.WriteString("Your fake survey is ready!\n")
	builder.WriteString(fmt.Sprintf("**%s**\n", survey.Topic().Value()))
	builder.WriteString(fmt.Sprintf("> %s %s responded\n", count(survey.NumberOfRespondents()), survey.RespondentType().Value()))
	for _, option := range survey.Options() {
		builder.WriteString(fmt.Sprintf("- %s: %s\n", option.OptionText().Value(), count(option.NumberOfVotes())))
	}
	if link := surveyLink(baseURL, survey.ID()); link != "" {
		builder.WriteString(link)
		builder.WriteString("\n")
	}
	return builder.String()
}

func buildDiscordSurveyMessage(survey *domain.Survey, baseURL string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**%s** created a new survey.\n", creatorName(survey)))
	builder.WriteString(fmt.Sprintf("- Topic: %s\n", survey.Topic().Value()))
	builder.WriteString(fmt.Sprintf("- Respondents: %s %s\n", count(survey.NumberOfRespondents()), survey.RespondentType().Value()))
	builder.WriteString(fmt.Sprintf("- Options: %d (rigged: %t)\n", len(survey.Options()), survey.IsRigged()))
	if link := surveyLink(baseURL, survey.ID()); link != "" {
		builder.WriteString(fmt.Sprintf("[Open survey](%s)\n", link))
	}
	return builder.String()
}

func buildSlackSurveyMessage(survey *domain.Survey, baseURL string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(":warning: %s created a new survey.\n", creatorName(survey)))
	builder.WriteString(fmt.Sprintf("Topic: %s\n", survey.Topic().Value()))
	builder.WriteString(fmt.Sprintf("Respondents: %s %s\n", count(survey.NumberOfRespondents()), survey.RespondentType().Value()))
	if link := surveyLink(baseURL, survey.ID()); link != "" {
		builder.WriteString(fmt.Sprintf("Survey: %s\n", link))
	}
	return builder.String()
}

func creatorName(survey *domain.Survey) string {
	if owner := survey.Owner(); owner != nil && !owner.DisplayName.IsZero() {
		return owner.DisplayName.Value()
	}
	if created := strings.TrimSpace(survey.Audit().CreatedBy); created != "" {
		return created
	}
	return "Someone"
}

func surveyLink(baseURL, id string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" || id == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + id
}

// count renders vote totals with thousands separators.
func count(n int) string {
	return humanize.Comma(int64(n))
}

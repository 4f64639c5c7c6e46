package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/danielolaszy/fetchissues/pkg/models"
)

type redmineListing struct {
	Issues *[]redmineIssue `json:"issues"`
}

type redmineIssue struct {
	ID        *int    `json:"id"`
	Subject   *string `json:"subject"`
	StartDate *string `json:"start_date"`
}

// parseRedmine decodes the JSON object returned by /issues.json.
func parseRedmine(body, ticketBaseURL string) ([]models.Issue, error) {
	var listing redmineListing
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		return nil, fmt.Errorf("decode redmine issues: %w", err)
	}
	if listing.Issues == nil {
		return nil, &FieldError{Kind: Redmine, Record: -1, Field: "issues"}
	}

	issues := *listing.Issues
	result := make([]models.Issue, 0, len(issues))
	for i, issue := range issues {
		switch {
		case issue.ID == nil:
			return nil, &FieldError{Kind: Redmine, Record: i, Field: "id"}
		case issue.Subject == nil:
			return nil, &FieldError{Kind: Redmine, Record: i, Field: "subject"}
		case issue.StartDate == nil:
			return nil, &FieldError{Kind: Redmine, Record: i, Field: "start_date"}
		}

		result = append(result, models.Issue{
			Created: *issue.StartDate,
			Title:   *issue.Subject,
			URL:     ticketBaseURL + "/" + strconv.Itoa(*issue.ID),
		})
	}
	return result, nil
}

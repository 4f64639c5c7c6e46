package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielolaszy/fetchissues/pkg/models"
	"github.com/google/go-github/v41/github"
)

// githubIssue keeps created_at as the raw string. It shadows the embedded
// time field, so timestamps without an offset still decode.
type githubIssue struct {
	github.Issue
	CreatedAt *string `json:"created_at"`
}

// parseGitHub decodes the JSON array returned by the GitHub issues API.
// Pull requests are listed by that API too and are kept, as GitHub shows them
// among the open issues.
func parseGitHub(body, ticketBaseURL string) ([]models.Issue, error) {
	var issues []*githubIssue
	if err := json.Unmarshal([]byte(body), &issues); err != nil {
		return nil, fmt.Errorf("decode github issues: %w", err)
	}

	result := make([]models.Issue, 0, len(issues))
	for i, issue := range issues {
		if issue == nil || issue.Number == nil {
			return nil, &FieldError{Kind: GitHub, Record: i, Field: "number"}
		}
		if issue.Title == nil {
			return nil, &FieldError{Kind: GitHub, Record: i, Field: "title"}
		}
		if issue.CreatedAt == nil {
			return nil, &FieldError{Kind: GitHub, Record: i, Field: "created_at"}
		}

		created, _, _ := strings.Cut(*issue.CreatedAt, "T")
		result = append(result, models.Issue{
			Created: created,
			Title:   issue.GetTitle(),
			URL:     ticketBaseURL + "/" + strconv.Itoa(issue.GetNumber()),
		})
	}
	return result, nil
}

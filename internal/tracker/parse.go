package tracker

import (
	"fmt"

	"github.com/danielolaszy/fetchissues/pkg/models"
)

// FieldError reports a record that lacks a field its adapter requires.
type FieldError struct {
	Kind   Kind
	Record int
	Field  string
}

func (e *FieldError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("%s listing: missing field %q", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s record %d: missing field %q", e.Kind, e.Record, e.Field)
}

// Parse converts a raw response body into issues using the adapter for kind.
// Issues are returned in the order they appear in body.
func Parse(kind Kind, body, ticketBaseURL string) ([]models.Issue, error) {
	switch kind {
	case GitHub:
		return parseGitHub(body, ticketBaseURL)
	case Redmine:
		return parseRedmine(body, ticketBaseURL)
	case Trac:
		return parseTrac(body, ticketBaseURL)
	case Mantis:
		return parseMantis(body, ticketBaseURL)
	default:
		return nil, fmt.Errorf("no adapter for %s", kind)
	}
}

package tracker

import (
	"strings"

	"github.com/danielolaszy/fetchissues/pkg/models"
)

// parseTrac reads a Trac query exported with format=csv and the columns
// id, summary and time.
func parseTrac(body, ticketBaseURL string) ([]models.Issue, error) {
	table, err := readCSV(Trac, body)
	if err != nil {
		return nil, err
	}
	if err := table.require("id", "summary", "time"); err != nil {
		return nil, err
	}

	result := make([]models.Issue, 0, len(table.rows))
	for i := range table.rows {
		created, _, _ := strings.Cut(table.value(i, "time"), " ")
		result = append(result, models.Issue{
			Created: created,
			Title:   table.value(i, "summary"),
			URL:     ticketBaseURL + "/" + table.value(i, "id"),
		})
	}
	return result, nil
}

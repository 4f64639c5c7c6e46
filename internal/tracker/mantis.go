package tracker

import (
	"github.com/danielolaszy/fetchissues/pkg/models"
)

// parseMantis reads the export of Mantis' csv_export.php. The ticket base URL
// is expected to end with the query parameter the id is appended to, as in
// ".../view.php?id=".
func parseMantis(body, ticketBaseURL string) ([]models.Issue, error) {
	table, err := readCSV(Mantis, body)
	if err != nil {
		return nil, err
	}
	if err := table.require("Id", "Summary", "Date Submitted"); err != nil {
		return nil, err
	}

	result := make([]models.Issue, 0, len(table.rows))
	for i := range table.rows {
		result = append(result, models.Issue{
			Created: table.value(i, "Date Submitted"),
			Title:   table.value(i, "Summary"),
			URL:     ticketBaseURL + table.value(i, "Id"),
		})
	}
	return result, nil
}

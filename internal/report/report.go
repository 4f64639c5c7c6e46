// Package report renders the weekly open-issue document.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/danielolaszy/fetchissues/internal/history"
	"github.com/danielolaszy/fetchissues/pkg/models"
)

// MarkerFileName is the file naming the most recently generated report.
const MarkerFileName = "fetch-out"

// Report is everything rendered into one weekly document.
type Report struct {
	// Generated is the time of the run; it selects the ISO week
	Generated time.Time

	// Sections are the trackers' issues in the order they are rendered
	Sections []models.Section

	// History lists previous report identifiers, newest first
	History []string
}

// ID returns the report identifier, e.g. "2023-W05".
func (r Report) ID() string {
	return history.WeekID(r.Generated)
}

// IssueCount returns the number of issues across all sections.
func (r Report) IssueCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Issues)
	}
	return n
}

// FileName returns the document name for a report identifier.
func FileName(id string) string {
	return id + ".md"
}

// Render writes the report as Markdown with a YAML front-matter block.
func Render(w io.Writer, r Report) error {
	year, week := r.Generated.ISOWeek()

	var buf bytes.Buffer
	buf.WriteString("---\n")
	fmt.Fprintf(&buf, "title: Open issues %s\n", r.ID())
	fmt.Fprintf(&buf, "date: %s\n", r.Generated.Format("2006-01-02"))
	buf.WriteString("---\n\n")

	fmt.Fprintf(&buf, "# Open issues in week %02d of %04d\n\n", week, year)

	buf.WriteString("## Currently Open Issues\n\n")
	for _, s := range r.Sections {
		for _, issue := range s.Issues {
			fmt.Fprintf(&buf, "* [%s - (%s)](%s)\n", issue.Title, issue.Created, issue.URL)
		}
	}

	buf.WriteString("\n## History\n\n")
	for _, id := range r.History {
		fmt.Fprintf(&buf, "* [%s](%s.html)\n", id, id)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile renders r into dir and returns the path of the new document.
func WriteFile(dir string, r Report) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	path := filepath.Join(dir, FileName(r.ID()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// WriteMarker records name as the latest report in dir's marker file.
func WriteMarker(dir, name string) error {
	path := filepath.Join(dir, MarkerFileName)
	if err := os.WriteFile(path, []byte(name), 0644); err != nil {
		return fmt.Errorf("failed to write marker file: %w", err)
	}
	return nil
}

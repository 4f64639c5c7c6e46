// Package digest runs one weekly report: it fetches every tracker, records
// the week in the history ledger and writes the report document.
package digest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/danielolaszy/fetchissues/internal/history"
	"github.com/danielolaszy/fetchissues/internal/logging"
	"github.com/danielolaszy/fetchissues/internal/registry"
	"github.com/danielolaszy/fetchissues/internal/report"
	"github.com/danielolaszy/fetchissues/internal/tracker"
	"github.com/danielolaszy/fetchissues/pkg/models"
)

// Fetcher returns the raw listing served by a tracker.
type Fetcher interface {
	Fetch(ctx context.Context, d tracker.Descriptor) (string, error)
}

// TrackerError attributes a failure to the tracker it happened on.
type TrackerError struct {
	Project string
	Op      string
	Err     error
}

func (e *TrackerError) Error() string {
	return fmt.Sprintf("tracker %q: %s: %v", e.Project, e.Op, e.Err)
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}

// Options configures a run.
type Options struct {
	// Trackers are processed sorted by project name, whatever their order here
	Trackers []tracker.Descriptor

	// Fetcher retrieves each tracker's listing
	Fetcher Fetcher

	// HistoryPath is the ledger file; relative paths resolve against the working directory
	HistoryPath string

	// OutputDir receives the report and the marker file
	OutputDir string

	// Now returns the time of the run; defaults to time.Now
	Now func() time.Time
}

// Result describes a completed run.
type Result struct {
	Report   report.Report
	Path     string
	Recorded bool
}

// Run fetches all trackers and writes the report. Any tracker failure aborts
// the run before anything is written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	historyPath := opts.HistoryPath
	if historyPath == "" {
		historyPath = history.DefaultFileName
	}
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}

	sections, err := Collect(ctx, opts.Fetcher, opts.Trackers)
	if err != nil {
		return nil, err
	}

	generated := now()
	id := history.WeekID(generated)

	ledger, err := history.Load(historyPath)
	if err != nil {
		return nil, err
	}
	// The history section already lists this week; the ledger itself is
	// only saved once the report file exists.
	entries := ledger.Entries()
	if !ledger.Contains(id) {
		entries = append([]string{id}, entries...)
	}

	r := report.Report{
		Generated: generated,
		Sections:  sections,
		History:   entries,
	}
	path, err := report.WriteFile(outDir, r)
	if err != nil {
		return nil, err
	}
	recorded, err := ledger.AppendIfAbsent(id)
	if err != nil {
		return nil, err
	}
	if err := report.WriteMarker(outDir, filepath.Base(path)); err != nil {
		return nil, err
	}

	logging.Info("report written",
		"id", id,
		"path", path,
		"trackers", len(sections),
		"issues", r.IssueCount())

	return &Result{Report: r, Path: path, Recorded: recorded}, nil
}

// Collect fetches and parses every tracker in project-name order.
func Collect(ctx context.Context, f Fetcher, trackers []tracker.Descriptor) ([]models.Section, error) {
	sorted := registry.Sorted(trackers)
	sections := make([]models.Section, 0, len(sorted))

	for _, d := range sorted {
		body, err := f.Fetch(ctx, d)
		if err != nil {
			logging.Error("failed to fetch tracker", "project", d.Project, "endpoint", d.Endpoint, "error", err)
			return nil, &TrackerError{Project: d.Project, Op: "fetch", Err: err}
		}

		issues, err := tracker.Parse(d.Kind, body, d.TicketBaseURL)
		if err != nil {
			logging.Error("failed to parse tracker listing", "project", d.Project, "kind", d.Kind.String(), "error", err)
			return nil, &TrackerError{Project: d.Project, Op: "parse", Err: err}
		}

		logging.Info("collected issues", "project", d.Project, "count", len(issues))
		sections = append(sections, models.Section{Project: d.Project, Issues: issues})
	}
	return sections, nil
}

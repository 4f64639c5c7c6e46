package report

import (
	"io"
	"strconv"

	"github.com/danielolaszy/fetchissues/internal/tracker"
	"github.com/danielolaszy/fetchissues/pkg/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	noticeColor  = color.New(color.FgYellow)
)

// PrintSummary writes a table with the number of open issues per tracker.
func PrintSummary(w io.Writer, sections []models.Section) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Tracker", "Open Issues"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	total := 0
	data := make([][]string, 0, len(sections)+1)
	for _, s := range sections {
		total += len(s.Issues)
		data = append(data, []string{s.Project, strconv.Itoa(len(s.Issues))})
	}
	data = append(data, []string{"Total", strconv.Itoa(total)})

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintTrackers writes a table describing the given trackers.
func PrintTrackers(w io.Writer, ds []tracker.Descriptor) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Project", "Kind", "Endpoint", "Secret"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(ds))
	for _, d := range ds {
		secret := d.HeadersSecret
		if secret == "" {
			secret = "-"
		}
		data = append(data, []string{d.Project, d.Kind.String(), d.Endpoint, secret})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Announce prints a status line naming the written report.
func Announce(w io.Writer, path string, recorded bool) {
	successColor.Fprintf(w, "Wrote %s\n", path)
	if !recorded {
		noticeColor.Fprintln(w, "History already lists this week; ledger left unchanged")
	}
}

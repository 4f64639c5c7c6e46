// Package registry holds the list of trackers a report is built from.
package registry

import (
	"fmt"
	"os"
	"sort"

	"github.com/danielolaszy/fetchissues/internal/tracker"
	"gopkg.in/yaml.v3"
)

// SecretSource supplies header mappings by secret name.
type SecretSource interface {
	Headers(name string) (map[string]string, error)
}

// file is the on-disk layout of a registry file.
type file struct {
	Trackers []tracker.Descriptor `yaml:"trackers"`
}

// Default returns the built-in trackers in declaration order.
func Default() []tracker.Descriptor {
	return []tracker.Descriptor{
		{
			Kind:          tracker.Trac,
			Project:       "OpenModelica",
			Endpoint:      "https://trac.openmodelica.org/OpenModelica/query?status=accepted&status=assigned&status=new&status=reopened&summary=~into-cps&or&status=accepted&status=assigned&status=new&status=reopened&description=~into-cps&format=csv&col=id&col=summary&col=time&order=priority",
			TicketBaseURL: "https://trac.openmodelica.org/OpenModelica/ticket",
		},
		{
			Kind:          tracker.Redmine,
			Project:       "Modelio",
			Endpoint:      "http://forge.modelio.org/projects/intocps/issues.json",
			TicketBaseURL: "http://forge.modelio.org/issues",
		},
		{
			Kind:          tracker.GitHub,
			Project:       "INTO-CPS Application",
			Endpoint:      "https://api.github.com/repos/into-cps/INTO-CPS_Application/issues?state=open",
			TicketBaseURL: "https://github.com/into-cps/INTO-CPS_Application/issues",
		},
		{
			Kind:          tracker.GitHub,
			Project:       "Overture",
			Endpoint:      "https://api.github.com/repos/overturetool/overture/issues?state=open&labels=into-cps",
			TicketBaseURL: "https://github.com/overturetool/overture/issues",
		},
		{
			Kind:          tracker.GitHub,
			Project:       "Overture-FMU",
			Endpoint:      "https://api.github.com/repos/overturetool/overture-fmu/issues?state=open",
			TicketBaseURL: "https://github.com/overturetool/overture-fmu/issues",
		},
		{
			Kind:          tracker.GitHub,
			Project:       "20-sim FMU Export",
			Endpoint:      "https://api.github.com/repos/controllab/fmi-export-20sim/issues?state=open",
			TicketBaseURL: "https://github.com/controllab/fmi-export-20sim/issues",
		},
		{
			Kind:          tracker.GitHub,
			Project:       "INTO-CPS DSE",
			Endpoint:      "https://api.github.com/repos/CarlGamble/INTO-CPS-DSE/issues?state=open",
			TicketBaseURL: "https://github.com/CarlGamble/INTO-CPS-DSE/issues",
		},
		{
			Kind:          tracker.GitHub,
			Project:       "INTO-CPS UI",
			Endpoint:      "https://api.github.com/repos/into-cps/intocps-ui/issues?state=open",
			TicketBaseURL: "https://github.com/into-cps/intocps-ui/issues",
		},
		{
			Kind:          tracker.Mantis,
			Project:       "RT-Tester",
			Endpoint:      "https://software.verified.de/mantis/csv_export.php",
			HeadersSecret: "rtt_headers",
			TicketBaseURL: "https://software.verified.de/mantis/view.php?id=",
		},
	}
}

// LoadFile reads a YAML registry file of the form
//
//	trackers:
//	  - kind: github
//	    project: Overture
//	    endpoint: https://api.github.com/repos/overturetool/overture/issues
//	    ticket_base_url: https://github.com/overturetool/overture/issues
func LoadFile(path string) ([]tracker.Descriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse registry file %s: %w", path, err)
	}
	if len(f.Trackers) == 0 {
		return nil, fmt.Errorf("registry file %s lists no trackers", path)
	}

	for i, d := range f.Trackers {
		if err := validate(d); err != nil {
			return nil, fmt.Errorf("registry file %s: tracker %d: %w", path, i, err)
		}
	}
	return f.Trackers, nil
}

func validate(d tracker.Descriptor) error {
	var missing []string
	if d.Kind == 0 {
		missing = append(missing, "kind")
	}
	if d.Project == "" {
		missing = append(missing, "project")
	}
	if d.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if d.TicketBaseURL == "" {
		missing = append(missing, "ticket_base_url")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %v", missing)
	}
	return nil
}

// Sorted returns a copy of ds ordered by project name. Names compare
// byte-wise, so upper-case letters sort before lower-case ones.
func Sorted(ds []tracker.Descriptor) []tracker.Descriptor {
	out := make([]tracker.Descriptor, len(ds))
	copy(out, ds)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Project < out[j].Project
	})
	return out
}

// RequiresSecrets reports whether any tracker takes its headers from the
// secrets file.
func RequiresSecrets(ds []tracker.Descriptor) bool {
	for _, d := range ds {
		if d.HeadersSecret != "" {
			return true
		}
	}
	return false
}

// Resolve returns copies of ds whose headers are filled from secrets.
// Headers the tracker declares itself are kept; secret values win on conflict.
func Resolve(ds []tracker.Descriptor, secrets SecretSource) ([]tracker.Descriptor, error) {
	out := make([]tracker.Descriptor, 0, len(ds))
	for _, d := range ds {
		if d.HeadersSecret == "" {
			out = append(out, d)
			continue
		}

		if secrets == nil {
			return nil, fmt.Errorf("tracker %q: secret %q requested but no secrets loaded", d.Project, d.HeadersSecret)
		}
		fromSecret, err := secrets.Headers(d.HeadersSecret)
		if err != nil {
			return nil, fmt.Errorf("tracker %q: %w", d.Project, err)
		}

		merged := make(map[string]string, len(d.Headers)+len(fromSecret))
		for k, v := range d.Headers {
			merged[k] = v
		}
		for k, v := range fromSecret {
			merged[k] = v
		}
		out = append(out, d.WithHeaders(merged))
	}
	return out, nil
}

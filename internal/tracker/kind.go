// Package tracker normalizes the listings of the supported issue trackers
// into models.Issue records.
package tracker

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the wire format a tracker answers with.
type Kind int

const (
	// GitHub answers with the JSON array of the REST issues API.
	GitHub Kind = iota + 1
	// Redmine answers with a JSON object holding an "issues" array.
	Redmine
	// Trac answers with a CSV export of a ticket query.
	Trac
	// Mantis answers with the CSV export of csv_export.php.
	Mantis
)

var kindNames = map[Kind]string{
	GitHub:  "github",
	Redmine: "redmine",
	Trac:    "trac",
	Mantis:  "mantis",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a name such as "github" or "Trac" to a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown tracker kind: %q", name)
}

// UnmarshalYAML decodes a kind from its name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes a kind as its name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Descriptor is the static configuration of one tracker.
type Descriptor struct {
	// Kind selects the adapter used on the response body
	Kind Kind `yaml:"kind"`

	// Project is the display label, also used as sort key
	Project string `yaml:"project"`

	// Endpoint is the URL fetched for the open-issue listing
	Endpoint string `yaml:"endpoint"`

	// Headers are sent with the request; nil for public endpoints
	Headers map[string]string `yaml:"headers,omitempty"`

	// HeadersSecret names the secrets-file entry that supplies Headers
	HeadersSecret string `yaml:"headers_secret,omitempty"`

	// TicketBaseURL is the prefix used to rebuild per-ticket links
	TicketBaseURL string `yaml:"ticket_base_url"`
}

// WithHeaders returns a copy of d carrying headers.
func (d Descriptor) WithHeaders(headers map[string]string) Descriptor {
	cp := make(map[string]string, len(headers))
	for k, v := range headers {
		cp[k] = v
	}
	d.Headers = cp
	return d
}

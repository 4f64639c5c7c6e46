package tracker

import (
	"errors"
	"testing"

	"github.com/danielolaszy/fetchissues/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		kind     Kind
		body     string
		baseURL  string
		expected []models.Issue
	}{
		{
			name:    "GitHub single issue",
			kind:    GitHub,
			body:    `[{"created_at":"2023-02-01T10:00:00Z","title":"Bug X","number":42}]`,
			baseURL: "https://github.com/org/repo/issues",
			expected: []models.Issue{
				{Created: "2023-02-01", Title: "Bug X", URL: "https://github.com/org/repo/issues/42"},
			},
		},
		{
			name: "GitHub keeps order and offset date",
			kind: GitHub,
			body: `[
				{"created_at":"2023-01-31T23:30:00-05:00","title":"Late","number":7,"state":"open"},
				{"created_at":"2022-12-24T08:00:00Z","title":"Early","number":3}
			]`,
			baseURL: "https://github.com/org/repo/issues",
			expected: []models.Issue{
				{Created: "2023-01-31", Title: "Late", URL: "https://github.com/org/repo/issues/7"},
				{Created: "2022-12-24", Title: "Early", URL: "https://github.com/org/repo/issues/3"},
			},
		},
		{
			name:    "GitHub timestamp without offset",
			kind:    GitHub,
			body:    `[{"created_at":"2023-02-01T10:00:00","title":"Local time","number":9}]`,
			baseURL: "https://github.com/org/repo/issues",
			expected: []models.Issue{
				{Created: "2023-02-01", Title: "Local time", URL: "https://github.com/org/repo/issues/9"},
			},
		},
		{
			name:     "GitHub empty listing",
			kind:     GitHub,
			body:     `[]`,
			baseURL:  "https://github.com/org/repo/issues",
			expected: []models.Issue{},
		},
		{
			name: "Redmine",
			kind: Redmine,
			body: `{"issues":[
				{"id":1201,"subject":"Export fails","start_date":"2023-01-15","status":{"id":1,"name":"New"}},
				{"id":1199,"subject":"Typo in menu","start_date":"2022-11-02"}
			],"total_count":2,"offset":0,"limit":25}`,
			baseURL: "http://forge.modelio.org/issues",
			expected: []models.Issue{
				{Created: "2023-01-15", Title: "Export fails", URL: "http://forge.modelio.org/issues/1201"},
				{Created: "2022-11-02", Title: "Typo in menu", URL: "http://forge.modelio.org/issues/1199"},
			},
		},
		{
			name:    "Trac",
			kind:    Trac,
			body:    "id,summary,time\r\n7,\"Fails on load\",\"2023-02-03 14:00:00\"\r\n",
			baseURL: "https://trac.example.org/ticket",
			expected: []models.Issue{
				{Created: "2023-02-03", Title: "Fails on load", URL: "https://trac.example.org/ticket/7"},
			},
		},
		{
			name:    "Trac with byte-order mark",
			kind:    Trac,
			body:    "\ufeffid,summary,time\r\n12,\"Crash, on exit\",2021-06-01 09:10:11\r\n13,Slow,2021-06-02\r\n",
			baseURL: "https://trac.example.org/ticket",
			expected: []models.Issue{
				{Created: "2021-06-01", Title: "Crash, on exit", URL: "https://trac.example.org/ticket/12"},
				{Created: "2021-06-02", Title: "Slow", URL: "https://trac.example.org/ticket/13"},
			},
		},
		{
			name:    "Mantis",
			kind:    Mantis,
			body:    "Id,Project,Summary,Date Submitted\n0000321,RTT,Timeout in runner,2023-01-20\n",
			baseURL: "https://software.verified.de/mantis/view.php?id=",
			expected: []models.Issue{
				{Created: "2023-01-20", Title: "Timeout in runner", URL: "https://software.verified.de/mantis/view.php?id=0000321"},
			},
		},
		{
			name:     "Mantis header only",
			kind:     Mantis,
			body:     "\ufeffId,Summary,Date Submitted\n",
			baseURL:  "https://software.verified.de/mantis/view.php?id=",
			expected: []models.Issue{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			issues, err := Parse(tc.kind, tc.body, tc.baseURL)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, issues)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name      string
		kind      Kind
		body      string
		wantField string
	}{
		{name: "GitHub malformed JSON", kind: GitHub, body: `[{"title":`},
		{name: "GitHub object instead of array", kind: GitHub, body: `{"message":"Not Found"}`},
		{name: "GitHub missing number", kind: GitHub, body: `[{"created_at":"2023-02-01T10:00:00Z","title":"X"}]`, wantField: "number"},
		{name: "GitHub missing title", kind: GitHub, body: `[{"created_at":"2023-02-01T10:00:00Z","number":1}]`, wantField: "title"},
		{name: "GitHub missing created_at", kind: GitHub, body: `[{"title":"X","number":1}]`, wantField: "created_at"},
		{name: "Redmine malformed JSON", kind: Redmine, body: `{"issues":[`},
		{name: "Redmine missing issues", kind: Redmine, body: `{"total_count":0}`, wantField: "issues"},
		{name: "Redmine missing subject", kind: Redmine, body: `{"issues":[{"id":1,"start_date":"2023-01-01"}]}`, wantField: "subject"},
		{name: "Trac empty body", kind: Trac, body: ``},
		{name: "Trac missing column", kind: Trac, body: "id,summary\n1,foo\n", wantField: "time"},
		{name: "Trac ragged row", kind: Trac, body: "id,summary,time\n1,foo\n"},
		{name: "Mantis missing column", kind: Mantis, body: "Id,Summary\n1,foo\n", wantField: "Date Submitted"},
		{name: "Unknown kind", kind: Kind(99), body: `[]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			issues, err := Parse(tc.kind, tc.body, "https://example.org")
			require.Error(t, err)
			assert.Nil(t, issues)

			if tc.wantField != "" {
				var fieldErr *FieldError
				require.True(t, errors.As(err, &fieldErr), "expected FieldError, got %v", err)
				assert.Equal(t, tc.wantField, fieldErr.Field)
				assert.Equal(t, tc.kind, fieldErr.Kind)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{input: "github", expected: GitHub},
		{input: "Redmine", expected: Redmine},
		{input: " TRAC ", expected: Trac},
		{input: "mantis", expected: Mantis},
		{input: "jira", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			kind, err := ParseKind(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestKindYAML(t *testing.T) {
	var d Descriptor
	err := yaml.Unmarshal([]byte("kind: trac\nproject: OpenModelica\n"), &d)
	require.NoError(t, err)
	assert.Equal(t, Trac, d.Kind)

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: trac")

	err = yaml.Unmarshal([]byte("kind: bugzilla\n"), &d)
	assert.Error(t, err)
}

func TestWithHeadersCopies(t *testing.T) {
	headers := map[string]string{"Cookie": "a=b"}
	d := Descriptor{Project: "RT-Tester"}.WithHeaders(headers)
	headers["Cookie"] = "changed"

	assert.Equal(t, "a=b", d.Headers["Cookie"])
}

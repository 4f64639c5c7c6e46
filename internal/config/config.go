// Package config loads the secrets file that supplies tracker credentials.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SecretsFileName is the name of the secrets file in the user's home directory.
const SecretsFileName = "fetch-issues.json"

// GitHubTokenKey is the optional secret holding a GitHub API token.
const GitHubTokenKey = "github_token"

// ErrNotFound is returned by Load when the secrets file does not exist.
var ErrNotFound = errors.New("secrets file not found")

// Config holds the secrets read from the secrets file. It is read once at
// startup and never modified afterwards.
type Config struct {
	path string
	v    *viper.Viper
}

// DefaultSecretsPath returns the secrets file location under the home directory.
func DefaultSecretsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, SecretsFileName), nil
}

// Load reads the JSON secrets file at path. The file maps a secret name to
// either a string or an object of strings.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat secrets file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}

	return &Config{path: path, v: v}, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Headers returns the header mapping stored under name. Secret names are
// matched case-insensitively, and header names come back lower-cased, which
// is harmless since HTTP header names are case-insensitive.
func (c *Config) Headers(name string) (map[string]string, error) {
	if c == nil || !c.v.IsSet(name) {
		return nil, fmt.Errorf("secret %q not found", name)
	}
	raw, ok := c.v.Get(name).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("secret %q is not a header mapping", name)
	}

	headers := make(map[string]string, len(raw))
	for k, val := range raw {
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("secret %q: header %q is not a string", name, k)
		}
		headers[k] = s
	}
	return headers, nil
}

// Token returns the string secret stored under name, or "" when absent.
func (c *Config) Token(name string) string {
	if c == nil {
		return ""
	}
	return c.v.GetString(name)
}

// Package credentials resolves API credentials from profile files or the
// environment. The rest of the module treats it as an opaque provider.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables holding the API credentials, both in the process
// environment and inside profile files.
const (
	EnvEmail    = "KTAPI_AUTH_EMAIL"
	EnvAPIToken = "KTAPI_AUTH_API_TOKEN"
)

// DefaultProfileDir is the directory searched for profile files when none is
// given, relative to the user's home directory.
const DefaultProfileDir = ".kentik"

// Credentials authenticate every API request.
type Credentials struct {
	Email    string
	APIToken string
}

// Get resolves credentials for the named profile. A profile is a dotenv file
// named after the profile in dir (default ~/.kentik); when the file does not
// exist, the process environment is consulted instead. Missing values are an
// error naming the variables that were not found.
func Get(profile, dir string) (Credentials, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Credentials{}, fmt.Errorf("cannot locate home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultProfileDir)
	}
	path := filepath.Join(dir, profile)
	if _, err := os.Stat(path); err == nil {
		vars, err := godotenv.Read(path)
		if err != nil {
			return Credentials{}, fmt.Errorf("cannot read profile %q: %w", path, err)
		}
		return fromLookup(profile, func(key string) string { return vars[key] })
	}
	return fromLookup(profile, os.Getenv)
}

func fromLookup(profile string, lookup func(string) string) (Credentials, error) {
	creds := Credentials{
		Email:    lookup(EnvEmail),
		APIToken: lookup(EnvAPIToken),
	}
	var missing []string
	if creds.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if creds.APIToken == "" {
		missing = append(missing, EnvAPIToken)
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("profile %q: missing %s", profile, strings.Join(missing, ", "))
	}
	return creds, nil
}

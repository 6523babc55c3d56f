package config

import (
	"fmt"
	"strconv"
)

// Config holds the credentials and defaults for the three wrapped
// services. Values come from the environment (optionally via .env),
// with an optional ~/.trident/config.yaml for non-secret defaults and
// the OS keyring as a fallback for secrets.
type Config struct {
	Redshift   Redshift   `mapstructure:"redshift"`
	Jira       Jira       `mapstructure:"jira"`
	Confluence Confluence `mapstructure:"confluence"`

	// Schema is the default warehouse schema for query context.
	Schema string `mapstructure:"schema"`
	// Output is the default output format for jira/confluence commands.
	Output string `mapstructure:"output"`
}

// Redshift holds warehouse connection parameters.
type Redshift struct {
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
}

// DSN builds a connection string from the parts.
func (r Redshift) DSN() string {
	dsn := "postgres://"
	if r.User != "" {
		dsn += r.User
		if r.Password != "" {
			dsn += ":" + r.Password
		}
		dsn += "@"
	}
	dsn += r.Host
	if r.Port > 0 {
		dsn += ":" + strconv.Itoa(r.Port)
	}
	dsn += "/" + r.Database
	return dsn
}

// Validate checks that the required warehouse parameters are present.
func (r Redshift) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("REDSHIFT_HOST is not set")
	}
	if r.Database == "" {
		return fmt.Errorf("REDSHIFT_DATABASE is not set")
	}
	return nil
}

// Jira holds Jira server credentials.
type Jira struct {
	URL      string `mapstructure:"url"`
	Email    string `mapstructure:"email"`
	APIToken string `mapstructure:"api_token"`
}

// Validate checks that the required Jira parameters are present.
func (j Jira) Validate() error {
	if j.URL == "" {
		return fmt.Errorf("JIRA_URL is not set")
	}
	if j.Email == "" || j.APIToken == "" {
		return fmt.Errorf("JIRA_EMAIL and JIRA_API_TOKEN must be set")
	}
	return nil
}

// Confluence holds Confluence credentials and the personal space key.
type Confluence struct {
	URL           string `mapstructure:"url"`
	Username      string `mapstructure:"username"`
	APIToken      string `mapstructure:"api_token"`
	PersonalSpace string `mapstructure:"personal_space"`
}

// Validate checks that the required Confluence parameters are present.
func (c Confluence) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("CONFLUENCE_URL is not set")
	}
	if c.Username == "" || c.APIToken == "" {
		return fmt.Errorf("CONFLUENCE_USERNAME and CONFLUENCE_API_TOKEN must be set")
	}
	return nil
}

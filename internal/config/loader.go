package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	configDir  = ".trident"
	configFile = "config"
	configType = "yaml"

	// KeyringService is the service name secrets are stored under.
	KeyringService = "trident"

	// Keyring entry names for secret fallback.
	KeyRedshiftPassword   = "redshift-password"
	KeyJiraAPIToken       = "jira-api-token"
	KeyConfluenceAPIToken = "confluence-api-token"
)

// Load builds the configuration from, in order of precedence:
// environment variables (after best-effort .env loading), the optional
// ~/.trident/config.yaml, and the OS keyring for absent secrets.
func Load() (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(configFile)
	v.SetConfigType(configType)
	if dir, err := configDirPath(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("redshift.port", 5439)
	v.SetDefault("schema", "cc")
	v.SetDefault("output", "text")

	bindings := map[string]string{
		"redshift.database":         "REDSHIFT_DATABASE",
		"redshift.user":             "REDSHIFT_USER",
		"redshift.password":         "REDSHIFT_PASSWORD",
		"redshift.host":             "REDSHIFT_HOST",
		"redshift.port":             "REDSHIFT_PORT",
		"jira.url":                  "JIRA_URL",
		"jira.email":                "JIRA_EMAIL",
		"jira.api_token":            "JIRA_API_TOKEN",
		"confluence.url":            "CONFLUENCE_URL",
		"confluence.username":       "CONFLUENCE_USERNAME",
		"confluence.api_token":      "CONFLUENCE_API_TOKEN",
		"confluence.personal_space": "CONFLUENCE_PERSONAL_SPACE",
	}
	for key, env := range bindings {
		// Register the key so Unmarshal sees env-only values.
		if key != "redshift.port" {
			v.SetDefault(key, "")
		}
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Redshift.Password = secretFallback(cfg.Redshift.Password, KeyRedshiftPassword)
	cfg.Jira.APIToken = secretFallback(cfg.Jira.APIToken, KeyJiraAPIToken)
	cfg.Confluence.APIToken = secretFallback(cfg.Confluence.APIToken, KeyConfluenceAPIToken)

	return cfg, nil
}

// StoreSecret writes a secret to the OS keyring.
func StoreSecret(name, value string) error {
	return keyring.Set(KeyringService, name, value)
}

// DeleteSecret removes a secret from the OS keyring.
func DeleteSecret(name string) error {
	return keyring.Delete(KeyringService, name)
}

func secretFallback(current, name string) string {
	if current != "" {
		return current
	}
	if value, err := keyring.Get(KeyringService, name); err == nil {
		return value
	}
	return current
}

func configDirPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir), nil
}

package config

import (
	"os"
	"sort"
)

// Config holds all configuration for the application
type Config struct {
	// Jira configuration
	JiraProjectKey string // Project new tickets are created in
	JiraDomain     string // Jira Cloud domain, e.g. example.atlassian.net
	JiraEmail      string // Account email for basic auth
	JiraAPIToken   string // API token paired with the email

	// Log level
	LogLevel string // Defaults to "info"
}

// Load creates a new Config instance from environment variables. Missing
// Jira values are not an error here: the first failing remote call surfaces
// them. The returned slice names any unset variables so callers can warn.
func Load() (*Config, []string) {
	cfg := &Config{}

	envVars := map[string]*string{
		"JIRA_PROJECT_KEY": &cfg.JiraProjectKey,
		"JIRA_DOMAIN":      &cfg.JiraDomain,
		"JIRA_EMAIL":       &cfg.JiraEmail,
		"JIRA_API_TOKEN":   &cfg.JiraAPIToken,
	}

	var missingVars []string
	for env, ptr := range envVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}
	// Map iteration order is random; keep warnings stable.
	sort.Strings(missingVars)

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, missingVars
}

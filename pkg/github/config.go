package github

// Config represents the configuration for the GitHub Actions client
type Config struct {
	// Token is a personal access token with workflow scope
	Token string

	// Owner is the repository owner (user or organization)
	Owner string

	// Repo is the repository name
	Repo string

	// Workflow is the workflow file name (e.g. "crawl.yml")
	Workflow string

	// Ref is the git ref the workflow runs against
	Ref string

	// BaseURL is the GitHub API base URL; defaults to https://api.github.com
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrInvalidConfig
	}
	if c.Owner == "" {
		return ErrInvalidConfig
	}
	if c.Repo == "" {
		return ErrInvalidConfig
	}
	if c.Workflow == "" {
		return ErrInvalidConfig
	}
	if c.Ref == "" {
		c.Ref = "main"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.github.com"
	}
	return nil
}

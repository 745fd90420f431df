package cli

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/mfreeman/rosterhub/internal/session"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `envconfig:"SERVER" default:"http://localhost:8080"`
	Token     string `envconfig:"TOKEN"`
	TokenFile string `envconfig:"TOKEN_FILE"`
	Output    string `ignored:"true"`
	Verbose   bool   `ignored:"true"`
}

// DefaultConfig returns a Config populated from ROSTERHUB_* environment
// variables, falling back to defaults.
func DefaultConfig() *Config {
	var c Config
	if err := envconfig.Process("rosterhub", &c); err != nil {
		c = Config{ServerURL: "http://localhost:8080"}
	}
	if c.TokenFile == "" {
		c.TokenFile = session.DefaultCredentialPath()
	}
	c.Output = "text"
	return &c
}

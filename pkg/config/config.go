// Package config loads and validates the YAML run configuration for a
// collection run: seed devices, credentials, concurrency, discovery and
// collection options, export paths, and the optional resolution cache.
package config

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/MarkTegna/netwalker/pkg/util"
)

// Credentials is an SSH username/password pair.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Device is one seed or statically configured device.
type Device struct {
	Name        string       `yaml:"name"`
	Host        string       `yaml:"host"`
	Credentials *Credentials `yaml:"credentials,omitempty"`
}

// Discovery controls the CDP/LLDP topology walk.
type Discovery struct {
	Enabled      bool   `yaml:"enabled"`
	MaxDepth     int    `yaml:"max_depth"`
	DomainFilter string `yaml:"domain_filter,omitempty"`
}

// Collection controls which tables are scraped.
type Collection struct {
	BGP    bool `yaml:"bgp"`
	PerVRF bool `yaml:"per_vrf"`
}

// Export holds output destinations. Empty fields disable that exporter.
type Export struct {
	CSVDir     string `yaml:"csv_dir,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
	PDFPath    string `yaml:"pdf_path,omitempty"`
}

// Cache configures the optional Redis resolution cache.
type Cache struct {
	Addr       string `yaml:"addr,omitempty"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Config is the full run configuration.
type Config struct {
	Devices        []Device    `yaml:"devices"`
	Credentials    Credentials `yaml:"credentials"`
	Concurrency    int         `yaml:"concurrency"`
	TimeoutSeconds int         `yaml:"timeout_seconds"`
	Discovery      Discovery   `yaml:"discovery"`
	Collection     Collection  `yaml:"collection"`
	Export         Export      `yaml:"export"`
	Cache          Cache       `yaml:"cache"`
}

// Load reads, parses, and validates a run configuration file, applying
// defaults for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Concurrency == 0 {
		c.Concurrency = 5
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.Discovery.Enabled && c.Discovery.MaxDepth == 0 {
		c.Discovery.MaxDepth = 3
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	v := &util.ValidationBuilder{}
	v.Add(len(c.Devices) > 0, "at least one device is required")
	for i, d := range c.Devices {
		if d.Name == "" {
			v.AddErrorf("devices[%d]: name is required", i)
		}
		if d.Host == "" {
			v.AddErrorf("devices[%d]: host is required", i)
		}
	}
	v.Add(c.Concurrency > 0, "concurrency must be positive")
	v.Add(c.TimeoutSeconds > 0, "timeout_seconds must be positive")
	if c.Discovery.Enabled {
		v.Add(c.Discovery.MaxDepth > 0, "discovery.max_depth must be positive when discovery is enabled")
	}
	if c.Credentials.Username == "" {
		// A global username is only required for devices without their own.
		for _, d := range c.Devices {
			if d.Credentials == nil {
				v.AddErrorf("device %s has no credentials and no global credentials are set", d.Name)
				break
			}
		}
	}
	if err := v.Build(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrInvalidConfig, err)
	}
	return nil
}

// CredentialsFor returns the effective credentials for a device: its own
// override when present, otherwise the global pair.
func (c *Config) CredentialsFor(d Device) Credentials {
	if d.Credentials != nil {
		return *d.Credentials
	}
	return c.Credentials
}

// PromptPassword interactively fills in the global password when the config
// omits it. No-op when a password is already set or stdin is not a terminal.
func (c *Config) PromptPassword() error {
	if c.Credentials.Password != "" {
		return nil
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		return fmt.Errorf("%w: no password configured and stdin is not a terminal", util.ErrInvalidConfig)
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", c.Credentials.Username)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	c.Credentials.Password = string(pass)
	return nil
}

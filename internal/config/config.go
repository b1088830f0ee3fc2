package config

import (
	"fmt"
	"os"
	"path"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = ".switchctl.yaml"

// Config is the explicit configuration structure passed to every operation.
// There is deliberately no package-level mutable state: tests override any
// field without process-wide side effects.
type Config struct {
	// Dir is the working directory containing the repository. Defaults to cwd.
	Dir string `yaml:"dir,omitempty"`

	// Baseline is the pristine starting branch from which both variants fork.
	Baseline string `yaml:"baseline,omitempty"`

	// Variants are the two edit-variant branch names, in fan-out order.
	// The first variant is the one a dirty baseline transition discards into.
	Variants []string `yaml:"variants,omitempty"`

	// TrunkCandidates are conventional branch names tried as the safe landing
	// spot during cleanup, in preference order.
	TrunkCandidates []string `yaml:"trunk_candidates,omitempty"`

	// MarkerFile is written with a generation timestamp before the initial commit.
	MarkerFile string `yaml:"marker_file,omitempty"`

	// IgnoreFile receives entries for the switcher's own files so editing
	// tools do not see the tool as part of the codebase under edit.
	IgnoreFile string `yaml:"ignore_file,omitempty"`

	// ScriptFiles are the switcher's own artifacts: added to IgnoreFile and
	// skipped when archiving.
	ScriptFiles []string `yaml:"script_files,omitempty"`

	// ExcludePatterns are glob patterns excluded from archives. Each pattern
	// is matched against the full relative path and against every path segment.
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			c.Dir = wd
		} else {
			c.Dir = "."
		}
	}
	if c.Baseline == "" {
		c.Baseline = "preedit"
	}
	if len(c.Variants) == 0 {
		c.Variants = []string{"alpha", "beta"}
	}
	if len(c.TrunkCandidates) == 0 {
		c.TrunkCandidates = []string{"main", "master"}
	}
	if c.MarkerFile == "" {
		c.MarkerFile = "README.md"
	}
	if c.IgnoreFile == "" {
		c.IgnoreFile = ".cursorignore"
	}
	if len(c.ScriptFiles) == 0 {
		c.ScriptFiles = []string{"switchctl", DefaultConfigFile}
	}
	if len(c.ExcludePatterns) == 0 {
		c.ExcludePatterns = []string{
			"*.env", // catch .env and test.env
			"*.zip", // avoid archiving previous archives
			"*.DS_Store",
			"*.code",
			"__pycache__",
			"dist", "bin",
			".venv", "venv",
			"node_modules",
			"target",
		}
	}
}

// ManagedBranches returns the baseline plus the variants, baseline first.
func (c *Config) ManagedBranches() []string {
	branches := make([]string, 0, len(c.Variants)+1)
	branches = append(branches, c.Baseline)
	branches = append(branches, c.Variants...)
	return branches
}

// IsVariant reports whether name is one of the configured edit variants.
func (c *Config) IsVariant(name string) bool {
	return slices.Contains(c.Variants, name)
}

// IsManaged reports whether name is one of the three managed branches.
func (c *Config) IsManaged(name string) bool {
	return name == c.Baseline || c.IsVariant(name)
}

// Load loads configuration from the specified file. A missing file is not an
// error: the tool works with defaults out of the box. Environment variables
// referenced in the YAML are expanded before parsing.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural invariants the switcher relies on.
func (c *Config) Validate() error {
	if len(c.Variants) != 2 {
		return fmt.Errorf("exactly two edit variants required, got %d", len(c.Variants))
	}
	seen := map[string]bool{}
	for _, b := range c.ManagedBranches() {
		if b == "" {
			return fmt.Errorf("managed branch name must not be empty")
		}
		if seen[b] {
			return fmt.Errorf("managed branch names must be distinct: %q repeated", b)
		}
		seen[b] = true
	}
	for _, v := range c.Variants {
		if slices.Contains(c.TrunkCandidates, v) {
			return fmt.Errorf("variant %q collides with a trunk candidate", v)
		}
	}
	for _, p := range c.ExcludePatterns {
		if _, err := path.Match(p, "probe"); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

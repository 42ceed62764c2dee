package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

const (
	defaultOut        = "icons"
	defaultConfigBase = "exticons"
)

// Config holds what may be set in the YAML config file. The size list and the
// palette are fixed and deliberately absent.
type Config struct {
	// output directory
	Out string `yaml:"out,omitempty"`
	// font file used for the glyph
	Font string `yaml:"font,omitempty"`
	// bitmap used as the glyph mask, takes precedence over font
	GlyphImage string `yaml:"glyphImage,omitempty"`
	Antialias  *bool  `yaml:"antialias,omitempty"`
	WebP       *bool  `yaml:"webp,omitempty"`
	// bbolt database recording generated icons
	Manifest string `yaml:"manifest,omitempty"`
	LogFile  string `yaml:"logFile,omitempty"`

	path string
}

func (c *Config) antialias() bool {
	return c.Antialias != nil && *c.Antialias
}

func (c *Config) webp() bool {
	return c.WebP != nil && *c.WebP
}

// loadConfig reads path, or exticons.yml / exticons.yaml from the working
// directory when path is empty. A missing default file yields an empty Config.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	candidates := []string{path}
	if path == "" {
		candidates = []string{defaultConfigBase + ".yml", defaultConfigBase + ".yaml"}
	}
	for _, p := range candidates {
		b, err := os.ReadFile(p)
		if err != nil {
			if path == "" && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", p, err)
		}
		cfg.path = p
		return cfg, nil
	}
	return cfg, nil
}

// resolve loads the config file and lets flags given on the command line
// override it.
func (o *options) resolve(cmd *cobra.Command) (*Config, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("out") || cfg.Out == "" {
		cfg.Out = o.out
	}
	if flags.Changed("font") {
		cfg.Font = o.font
	}
	if flags.Changed("glyph-image") {
		cfg.GlyphImage = o.glyphImage
	}
	if flags.Changed("antialias") {
		cfg.Antialias = &o.antialias
	}
	if flags.Changed("webp") {
		cfg.WebP = &o.webp
	}
	if flags.Changed("manifest") {
		cfg.Manifest = o.manifest
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	return cfg, nil
}

// Package config loads the bitforge.yaml device and variant table.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dosanma1/bitforge/internal/image"
)

const FileName = "bitforge.yaml"

// Config represents the bitforge.yaml configuration file.
type Config struct {
	// Device being built
	Device DeviceConfig `yaml:"device"`

	// Image variants the device ships with
	Variants []VariantConfig `yaml:"variants"`

	// Standard lists the variant suffixes built when no variant is
	// requested explicitly.
	Standard []string `yaml:"standard,omitempty"`

	// Build holds directory and seed defaults.
	Build BuildConfig `yaml:"build,omitempty"`
}

// DeviceConfig identifies the hardware product being targeted.
type DeviceConfig struct {
	Name string `yaml:"name"`
	Part string `yaml:"part"`
	Top  string `yaml:"top"`
}

// VariantConfig describes one image type of the device.
type VariantConfig struct {
	Suffix string   `yaml:"suffix"`
	Defs   []string `yaml:"defs,omitempty"`
	Top    string   `yaml:"top,omitempty"` // overrides device.top
}

// BuildConfig holds build directory settings.
type BuildConfig struct {
	OutputDir string `yaml:"output_dir,omitempty"`
	BaseDir   string `yaml:"base_dir,omitempty"`
	IPDir     string `yaml:"ip_dir,omitempty"`
	Seed      int    `yaml:"seed,omitempty"`
}

// Default returns the built-in configuration used when no bitforge.yaml
// is present: the E320 product line with its three image types.
func Default() *Config {
	c := &Config{
		Device: DeviceConfig{
			Name: "E320",
			Part: "xc7z045ffg900-3",
			Top:  "e320",
		},
		Variants: []VariantConfig{
			{Suffix: "1G", Defs: []string{"SFP_1GBE=1"}},
			{Suffix: "XG", Defs: []string{"SFP_10GBE=1"}},
			{Suffix: "AA", Defs: []string{"SFP_AURORA=1"}},
		},
		Standard: []string{"1G", "XG"},
	}
	c.applyDefaults()
	return c
}

// Load reads and parses a bitforge.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads bitforge.yaml from dir, falling back to the
// built-in device table when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Build.OutputDir == "" {
		c.Build.OutputDir = "build"
	}
	if c.Build.BaseDir == "" {
		c.Build.BaseDir = "."
	}
	if c.Build.IPDir == "" {
		c.Build.IPDir = "build-ip"
	}
	if len(c.Standard) == 0 && len(c.Variants) > 0 {
		c.Standard = []string{c.Variants[0].Suffix}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Device.Name == "" {
		return fmt.Errorf("device.name is required")
	}
	if c.Device.Part == "" {
		return fmt.Errorf("device.part is required")
	}
	if c.Device.Top == "" {
		return fmt.Errorf("device.top is required")
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("at least one variant is required")
	}

	seen := make(map[string]bool)
	for _, v := range c.Variants {
		if v.Suffix == "" {
			return fmt.Errorf("variant suffix is required")
		}
		if seen[v.Suffix] {
			return fmt.Errorf("duplicate variant suffix: %s", v.Suffix)
		}
		seen[v.Suffix] = true
	}

	for _, s := range c.Standard {
		if !seen[s] {
			return fmt.Errorf("standard variant %s is not defined", s)
		}
	}

	return nil
}

// Variant resolves a variant suffix into a fully populated image
// variant, merging the device-level defaults.
func (c *Config) Variant(suffix string) (image.Variant, error) {
	for _, v := range c.Variants {
		if v.Suffix != suffix {
			continue
		}
		top := v.Top
		if top == "" {
			top = c.Device.Top
		}
		return image.Variant{
			Device: c.Device.Name,
			Suffix: v.Suffix,
			Top:    top,
			Part:   c.Device.Part,
			Defs:   v.Defs,
		}, nil
	}
	return image.Variant{}, fmt.Errorf("unknown variant: %s (defined: %s)", suffix, c.variantList())
}

func (c *Config) variantList() string {
	out := ""
	for i, v := range c.Variants {
		if i > 0 {
			out += ", "
		}
		out += v.Suffix
	}
	return out
}

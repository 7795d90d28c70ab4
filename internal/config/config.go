package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"rayprobe/internal/scene"
)

// Output formats understood by the batch renderer.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
	FormatTGA  = "tga"
)

// Config holds the render and serve settings.
type Config struct {
	// Paths
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Backdrop  string `json:"backdrop" yaml:"backdrop"`

	// Render settings
	Frames        int      `json:"frames" yaml:"frames"`
	Supersample   int      `json:"supersample" yaml:"supersample"`
	Format        string   `json:"format" yaml:"format"`
	FrameDuration Duration `json:"frame_duration" yaml:"frame_duration"`
	Sweep         bool     `json:"sweep" yaml:"sweep"`
	LineWidth     float64  `json:"line_width" yaml:"line_width"`
	OutlineWidth  float64  `json:"outline_width" yaml:"outline_width"`
	Workers       int      `json:"workers" yaml:"workers"`

	// Live feed
	Listen string `json:"listen" yaml:"listen"`

	// Scenes replaces the built-in set when non-empty.
	Scenes []scene.Scene `json:"scenes" yaml:"scenes"`
}

// Load reads a YAML or JSON config file, picked by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Backdrop    string
	Frames      int
	Supersample int
	Format      string
	Workers     int
	Listen      string
}

// Resolve applies CLI overrides, then fills any empty field with its default.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Backdrop != "" {
		c.Backdrop = flags.Backdrop
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Listen != "" {
		c.Listen = flags.Listen
	}

	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Frames <= 0 {
		c.Frames = 60
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.FrameDuration <= 0 {
		c.FrameDuration = Duration(50 * time.Millisecond)
	}
	if c.LineWidth <= 0 {
		c.LineWidth = 2
	}
	if c.OutlineWidth <= 0 {
		c.OutlineWidth = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if len(c.Scenes) == 0 {
		c.Scenes = scene.Builtins()
	}
}

// Validate reports settings Resolve cannot repair.
func (c Config) Validate() error {
	switch c.Format {
	case FormatWebP, FormatPNG, FormatTGA:
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	seen := make(map[string]bool, len(c.Scenes))
	for _, s := range c.Scenes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if seen[s.Name] {
			return fmt.Errorf("config: duplicate scene %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

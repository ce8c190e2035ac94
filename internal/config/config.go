// Package config loads collage settings.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// the environment (COLLAGE_* variables, optionally seeded from a .env file),
// then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "COLLAGE_"

// Config holds every setting of the collage commands.
type Config struct {
	// ImageDir is the directory of album art to arrange.
	ImageDir string `yaml:"image_dir"`

	// Output is where the rendered collage is written.
	Output string `yaml:"output"`

	// Width and Height are the desired canvas size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Quality is the JPEG quality, 1-100.
	Quality int `yaml:"quality"`

	// HighResOutput, HighResWidth and HighResHeight configure an optional
	// second render from the original files. Zero sizes disable it.
	HighResOutput string `yaml:"high_res_output"`
	HighResWidth  int    `yaml:"high_res_width"`
	HighResHeight int    `yaml:"high_res_height"`

	// GridLineWidth draws separators of that thickness between tiles when
	// positive.
	GridLineWidth int    `yaml:"grid_line_width"`
	GridLineColor string `yaml:"grid_line_color"`

	// HighlightColor outlines the selected tile in the viewer.
	HighlightColor string `yaml:"highlight_color"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output:         "collage.png",
		Width:          1000,
		Height:         1000,
		Quality:        90,
		HighResOutput:  "collage_highres.png",
		GridLineColor:  "#FFFFFF",
		HighlightColor: "#FFD700",
		LogLevel:       "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path (if not
// empty), the .env file at envFile (if it exists) and the environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errFileUnreadable(path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errFileUnreadable(path, err)
		}
	}

	if envFile != "" {
		// Existing environment variables win over the file.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errFileUnreadable(envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"image_dir":       &c.ImageDir,
		"output":          &c.Output,
		"high_res_output": &c.HighResOutput,
		"grid_line_color": &c.GridLineColor,
		"highlight_color": &c.HighlightColor,
		"log_level":       &c.LogLevel,
		"log_file":        &c.LogFile,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envName(key)); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"width":           &c.Width,
		"height":          &c.Height,
		"quality":         &c.Quality,
		"high_res_width":  &c.HighResWidth,
		"high_res_height": &c.HighResHeight,
		"grid_line_width": &c.GridLineWidth,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(envName(key))
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errInvalidValue(envName(key), v, "an integer")
		}
		*dst = n
	}
	return nil
}

// HighRes reports whether the high-resolution pass is enabled.
func (c *Config) HighRes() bool {
	return c.HighResWidth > 0 && c.HighResHeight > 0
}

// Validate checks value ranges and colors. It does not require ImageDir,
// which only some commands need.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return errInvalidValue("width", c.Width, "a positive number of pixels")
	}
	if c.Height <= 0 {
		return errInvalidValue("height", c.Height, "a positive number of pixels")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return errInvalidValue("quality", c.Quality, "a value between 1 and 100")
	}
	if c.HighResWidth < 0 || c.HighResHeight < 0 || (c.HighResWidth > 0) != (c.HighResHeight > 0) {
		return errInvalidValue("high_res_width/high_res_height",
			fmt.Sprintf("%dx%d", c.HighResWidth, c.HighResHeight), "both positive, or both 0 to disable")
	}
	if c.HighRes() && c.HighResOutput == "" {
		return ErrMissing("high_res_output", "--high-res-output")
	}
	if c.Output == "" {
		return ErrMissing("output", "--output")
	}
	if c.GridLineWidth < 0 {
		return errInvalidValue("grid_line_width", c.GridLineWidth, "0 or more")
	}
	if _, err := imaging.ParseColor(c.GridLineColor); err != nil {
		return errInvalidColor("grid_line_color", c.GridLineColor)
	}
	if _, err := imaging.ParseColor(c.HighlightColor); err != nil {
		return errInvalidColor("highlight_color", c.HighlightColor)
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

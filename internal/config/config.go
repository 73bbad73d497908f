package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/G00405014/digital-rain/internal/rain"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
	DefaultSpeed  = "medium"
	DefaultMode   = "alternate"
	DefaultTail   = 0
)

type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Speed  string `yaml:"speed"`
	Mode   string `yaml:"mode"`
	Tail   int    `yaml:"tail"`
	Seed   int64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Speed:  DefaultSpeed,
		Mode:   DefaultMode,
		Tail:   DefaultTail,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the YAML file at path on base. Fields the file does not
// set keep their value in base.
func LoadInto(path string, base *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first configuration error. A config that fails
// validation must not be used to start an animation.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", rain.ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.Tail < 0 {
		return fmt.Errorf("%w: got %d", rain.ErrNegativeTail, c.Tail)
	}
	if _, err := c.GetSpeed(); err != nil {
		return err
	}
	if _, err := c.GetMode(); err != nil {
		return err
	}
	return nil
}

func (c *Config) GetSpeed() (rain.Speed, error) {
	return rain.ParseSpeed(c.Speed)
}

func (c *Config) GetMode() (rain.Mode, error) {
	return rain.ParseMode(c.Mode)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

package emu

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the shell configuration, read from a TOML file.
type Config struct {
	Audio AudioConfig `toml:"audio"`
	Video VideoConfig `toml:"video"`
	Input InputConfig `toml:"input"`
}

type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
}

type VideoConfig struct {
	Scale        int  `toml:"scale"`
	DisableVSync bool `toml:"disable_vsync"`
}

// InputConfig maps pad buttons to SDL key names.
type InputConfig struct {
	A      string `toml:"a"`
	B      string `toml:"b"`
	Select string `toml:"select"`
	Start  string `toml:"start"`
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Left   string `toml:"left"`
	Right  string `toml:"right"`
}

// DefaultConfig is used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Audio: AudioConfig{SampleRate: 44100},
		Video: VideoConfig{Scale: 3},
		Input: InputConfig{
			A: "X", B: "Z", Select: "Right Shift", Start: "Return",
			Up: "Up", Down: "Down", Left: "Left", Right: "Right",
		},
	}
}

// LoadConfig decodes a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

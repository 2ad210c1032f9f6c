package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Class backend kinds accepted in the manifest.
const (
	kindDemo = "demo"
	kindWasm = "wasm"
)

type classConfig struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`
	Path string `toml:"path"`
}

type fileConfig struct {
	LogLevel string        `toml:"log_level"`
	Classes  []classConfig `toml:"class"`
}

// loadConfig reads the class manifest. Every class needs a unique name and
// a known backend kind; wasm classes need a module path that exists.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("load manifest: %w", err)
	}

	if len(cfg.Classes) == 0 {
		return fileConfig{}, fmt.Errorf("manifest %s declares no classes", path)
	}

	seen := make(map[string]bool, len(cfg.Classes))
	for i := range cfg.Classes {
		c := &cfg.Classes[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return fileConfig{}, fmt.Errorf("class %d: name is required", i)
		}
		if seen[c.Name] {
			return fileConfig{}, fmt.Errorf("class %q declared twice", c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case kindDemo:
		case kindWasm:
			if c.Path == "" {
				return fileConfig{}, fmt.Errorf("class %q: wasm classes need a path", c.Name)
			}
			if _, err := os.Stat(c.Path); err != nil {
				return fileConfig{}, fmt.Errorf("class %q: %w", c.Name, err)
			}
		default:
			return fileConfig{}, fmt.Errorf("class %q: unknown kind %q", c.Name, c.Kind)
		}
	}
	return cfg, nil
}

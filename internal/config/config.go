// Package config loads the kintree user configuration.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/kintree/config.toml
// (falling back to ~/.config/kintree/config.toml):
//
//	data       = "~/genealogy/family.yaml"
//	output_dir = "~/genealogy/out"
//	formats    = ["svg", "png"]
//	photos     = true
//	arrows     = false
//	detailed   = false
//	no_cache   = false
//
// Every key is optional. Command-line flags win over the file, and the file
// wins over built-in defaults. A missing file is the same as an empty one.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
)

// Config mirrors the TOML file.
type Config struct {
	Data      string   `toml:"data"`
	OutputDir string   `toml:"output_dir"`
	Formats   []string `toml:"formats"`
	Photos    bool     `toml:"photos"`
	Arrows    bool     `toml:"arrows"`
	Detailed  bool     `toml:"detailed"`
	NoCache   bool     `toml:"no_cache"`
}

// DefaultPath returns the config file location for appName.
func DefaultPath(appName string) (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path. A missing file yields a zero Config. Unknown
// keys are rejected so that typos surface instead of being ignored.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, kerrors.New(kerrors.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Data = ExpandHome(cfg.Data)
	cfg.OutputDir = ExpandHome(cfg.OutputDir)
	return cfg, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

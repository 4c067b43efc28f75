// Package rc loads the rsed configuration file.
//
// The file is YAML, for example:
//
//	prompt: ": "
//	verbose: true
//	history: ~/.local/state/rsed/history.db
package rc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"src.rsed.sh/pkg/fsutil"
	"src.rsed.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[rc] ")

// Config is the content of an rc file. Zero values mean the key was not set.
type Config struct {
	// Prompt is the command-mode prompt.
	Prompt *string `yaml:"prompt"`
	// Verbose makes errors show the offending input.
	Verbose bool `yaml:"verbose"`
	// History is the path of the command history database.
	History string `yaml:"history"`
}

// DefaultPath returns the path of the rc file used when -rc is not given.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rsed", "rc.yaml"), nil
	}
	home, err := fsutil.GetHome("")
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %v", err)
	}
	return filepath.Join(home, ".config", "rsed", "rc.yaml"), nil
}

// Load reads the rc file at path. An empty path means the default one, which
// is allowed to be missing; an explicitly given path is not.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			logger.Println(err)
			return &Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Println("no rc file at", path)
			return &Config{}, nil
		}
		return nil, err
	}
	return Parse(path, data)
}

// Parse parses the content of an rc file. The name is only used in error
// messages.
func Parse(name string, data []byte) (*Config, error) {
	var cfg Config
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	history, err := expandTilde(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("%s: history: %w", name, err)
	}
	cfg.History = history
	logger.Printf("loaded %s: %+v", name, cfg)
	return &cfg, nil
}

func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := fsutil.GetHome("")
	if err != nil {
		return "", err
	}
	return home + path[1:], nil
}

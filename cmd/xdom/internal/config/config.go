package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/xdom/pkg/scheduler"
)

// FileName is the optional configuration file looked up in a project dir.
const FileName = "xdom.yaml"

const defaultAddr = "127.0.0.1:8080"

// Config represents the optional xdom.yaml configuration.
type Config struct {
	App       AppConfig        `yaml:"app"`
	Scheduler scheduler.Config `yaml:"scheduler"`
	Serve     ServeConfig      `yaml:"serve"`
	Log       LogConfig        `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// ServeConfig contains settings of the serve command.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Scheduler  scheduler.Config
	Addr       string
	LogLevel   logrus.Level
	Verbose    bool
}

// LoadOptional reads xdom.yaml from dir if present. A missing file yields
// an empty Config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads xdom.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	if cfg.Scheduler.StatsWindow < 0 || cfg.Scheduler.FrameInterval < 0 {
		return nil, fmt.Errorf("scheduler durations must not be negative (stats_window %v, frame_interval %v)",
			cfg.Scheduler.StatsWindow, cfg.Scheduler.FrameInterval)
	}

	modulePath := optionalModulePath(dir)
	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	addr := strings.TrimSpace(cfg.Serve.Addr)
	if addr == "" {
		addr = defaultAddr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("serve.addr %q is invalid: %w", addr, err)
	}

	level := logrus.InfoLevel
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		level, err = logrus.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		Scheduler:  cfg.Scheduler.WithDefaults(),
		Addr:       addr,
		LogLevel:   level,
		Verbose:    cfg.Log.Verbose,
	}, nil
}

// optionalModulePath returns the module path of dir/go.mod, or "" when
// there is none.
func optionalModulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "xdom_app"
	}
	return base
}

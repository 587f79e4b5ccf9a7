// Package config provides configuration types and defaults for cursorctl.
//
// Configuration is optional: every field has a default mirroring the tool's
// historic behavior (.env backing file in the working directory, rotating
// backups under env_backups capped at 10, DOMAIN/EMAIL/PASSWORD as the
// recognized variables). A YAML file can override any of it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Recognized environment variable names and the cookie field.
const (
	VarDomain   = "DOMAIN"
	VarEmail    = "EMAIL"
	VarPassword = "PASSWORD"
	VarCookie   = "COOKIE"

	// FieldCookie is the presentation-side cookie input field. It is not a
	// recognized env variable: the raw cookie is never persisted directly.
	FieldCookie = "cookie"
)

// RequiredCookieToken is the token name a well-formed cookie string must
// contain. Fixed by the third-party service.
const RequiredCookieToken = "WorkosCursorSessionToken"

// Defaults for the backing store and backup rotation.
const (
	DefaultEnvFile      = ".env"
	DefaultBackupDir    = "env_backups"
	DefaultBackupSuffix = ".env"
	DefaultMaxBackups   = 10
)

// Var pairs a recognized environment variable with its human label.
type Var struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

// Browser configures the registration browser driver.
type Browser struct {
	SignupURL   string `yaml:"signup_url"`
	SettingsURL string `yaml:"settings_url"`
	Headless    bool   `yaml:"headless"`
}

// Config holds all configuration options for cursorctl.
type Config struct {
	EnvFile     string  `yaml:"env_file"`
	BackupDir   string  `yaml:"backup_dir"`
	MaxBackups  int     `yaml:"max_backups"`
	Vars        []Var   `yaml:"vars"`
	StoragePath string  `yaml:"storage_json"` // editor storage.json, empty = per-OS default
	Browser     Browser `yaml:"browser"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		EnvFile:    DefaultEnvFile,
		BackupDir:  DefaultBackupDir,
		MaxBackups: DefaultMaxBackups,
		Vars: []Var{
			{Name: VarDomain, Label: "域名"},
			{Name: VarEmail, Label: "邮箱"},
			{Name: VarPassword, Label: "密码"},
		},
		Browser: Browser{
			SignupURL:   "https://authenticator.cursor.sh/sign-up",
			SettingsURL: "https://www.cursor.com/settings",
			Headless:    false,
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults.
// An empty path or missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Zero-valued fields fall back to defaults rather than disabling behavior.
	def := Default()
	if cfg.EnvFile == "" {
		cfg.EnvFile = def.EnvFile
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = def.BackupDir
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = def.MaxBackups
	}
	if len(cfg.Vars) == 0 {
		cfg.Vars = def.Vars
	}
	if cfg.Browser.SignupURL == "" {
		cfg.Browser.SignupURL = def.Browser.SignupURL
	}
	if cfg.Browser.SettingsURL == "" {
		cfg.Browser.SettingsURL = def.Browser.SettingsURL
	}
	return cfg, nil
}

// VarNames returns the recognized variable names in declaration order.
func (c Config) VarNames() []string {
	names := make([]string, len(c.Vars))
	for i, v := range c.Vars {
		names[i] = v.Name
	}
	return names
}

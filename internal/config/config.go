package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apkopt/internal/errors"
)

// DefaultOutput is the output APK used when --out is not given.
const DefaultOutput = "redex-out.apk"

// DefaultRedexBinary is looked up in PATH when no binary is configured.
const DefaultRedexBinary = "redex-all"

// Config is the validated configuration for one launcher run.
type Config struct {
	InputAPK  string
	OutputAPK string

	UnpackOnly bool
	Debug      bool
	Time       bool
	Sign       bool

	RedexBinary    string
	RedexConfig    string
	JarPath        string
	ProguardMap    string
	ProguardConfig string
	KeepFile       string
	Warn           string
	Passthru       []string
	PassthruJSON   []string

	Keystore    Keystore
	Workspace   WorkspaceConfig
	MetricsFile string
}

// Keystore holds the signing key location and credentials.
type Keystore struct {
	Path     string `yaml:"path"`
	Alias    string `yaml:"alias"`
	Password string `yaml:"password"`
}

// Complete reports whether every field needed for signing is present.
func (k Keystore) Complete() bool {
	return k.Path != "" && k.Alias != "" && k.Password != ""
}

// WorkspaceConfig controls where ephemeral workspaces are created.
type WorkspaceConfig struct {
	BaseDir string `yaml:"base_dir,omitempty"`
}

// DebugMode reports whether workspaces must survive the run. Unpack-only
// runs keep them too, since their whole point is inspecting the tree.
func (c *Config) DebugMode() bool {
	return c.UnpackOnly || c.Debug
}

// Settings is the optional YAML file with per-user defaults.
type Settings struct {
	RedexBinary string          `yaml:"redex_binary,omitempty"`
	RedexConfig string          `yaml:"config,omitempty"`
	Keystore    Keystore        `yaml:"keystore,omitempty"`
	Workspace   WorkspaceConfig `yaml:"workspace,omitempty"`
	MetricsFile string          `yaml:"metrics_file,omitempty"`
}

// LoadSettings reads a settings file. Environment references like ${HOME}
// are expanded before parsing. An empty path returns empty settings.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return &Settings{}, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigInvalid(path, err)
	}

	expanded := os.ExpandEnv(string(data))

	var s Settings
	if strings.TrimSpace(expanded) == "" {
		return &s, nil
	}
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, errors.ConfigInvalid(path, err)
	}
	return &s, nil
}

// ApplySettings fills fields the command line left empty. Flags always win.
func (c *Config) ApplySettings(s *Settings) {
	if s == nil {
		return
	}
	if c.RedexBinary == "" {
		c.RedexBinary = s.RedexBinary
	}
	if c.RedexConfig == "" {
		c.RedexConfig = s.RedexConfig
	}
	if c.Keystore.Path == "" {
		c.Keystore.Path = s.Keystore.Path
	}
	if c.Keystore.Alias == "" {
		c.Keystore.Alias = s.Keystore.Alias
	}
	if c.Keystore.Password == "" {
		c.Keystore.Password = s.Keystore.Password
	}
	if c.Workspace.BaseDir == "" {
		c.Workspace.BaseDir = s.Workspace.BaseDir
	}
	if c.MetricsFile == "" {
		c.MetricsFile = s.MetricsFile
	}
}

// ApplyDefaults fills the remaining empty fields: output path, optimizer
// binary, and the debug keystore when one is installed under home.
func (c *Config) ApplyDefaults(home string) {
	if c.OutputAPK == "" {
		c.OutputAPK = DefaultOutput
	}
	if c.RedexBinary == "" {
		c.RedexBinary = DefaultRedexBinary
	}
	if ks, ok := DiscoverDebugKeystore(home); ok {
		if c.Keystore.Path == "" {
			c.Keystore.Path = ks.Path
		}
		if c.Keystore.Alias == "" {
			c.Keystore.Alias = ks.Alias
		}
		if c.Keystore.Password == "" {
			c.Keystore.Password = ks.Password
		}
	}
}

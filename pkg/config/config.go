package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/resume-studio/pkg/flow"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ProviderWorker posts prompts to a text-completion worker.
	ProviderWorker = "worker"
	// ProviderAnthropic calls the Anthropic Messages API.
	ProviderAnthropic = "anthropic"

	// DefaultListenAddr is the address the API binds to.
	DefaultListenAddr = ":8787"
	// DefaultAnthropicModel is used when no model is configured.
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
)

// Config represents the application configuration.
type Config struct {
	ListenAddr  string           `json:"listen_addr" yaml:"listen_addr"`
	CORSOrigins []string         `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
	LogLevel    string           `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Completion  CompletionConfig `json:"completion" yaml:"completion"`
	PDF         PDFConfig        `json:"pdf" yaml:"pdf"`
	Defaults    DefaultConfig    `json:"defaults" yaml:"defaults"`
}

// CompletionConfig selects and configures the text-completion backend.
type CompletionConfig struct {
	Provider        string `json:"provider" yaml:"provider"`
	WorkerURL       string `json:"worker_url,omitempty" yaml:"worker_url,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`
	AnthropicURL    string `json:"anthropic_url,omitempty" yaml:"anthropic_url,omitempty"`
	Model           string `json:"model,omitempty" yaml:"model,omitempty"`
	TimeoutSeconds  int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// PDFConfig holds the export page geometry in points.
type PDFConfig struct {
	PageWidth  float64 `json:"page_width,omitempty" yaml:"page_width,omitempty"`
	PageHeight float64 `json:"page_height,omitempty" yaml:"page_height,omitempty"`
	Margin     float64 `json:"margin,omitempty" yaml:"margin,omitempty"`
	LineHeight float64 `json:"line_height,omitempty" yaml:"line_height,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// GetModel returns the configured model or the provider default.
func (c *CompletionConfig) GetModel() (model string) {
	if c.Model != "" {
		model = c.Model
		return model
	}
	if c.Provider == ProviderAnthropic {
		model = DefaultAnthropicModel
	}
	return model
}

// Timeout returns the per-call completion timeout.
func (c *CompletionConfig) Timeout() (timeout time.Duration) {
	timeout = 120 * time.Second
	if c.TimeoutSeconds > 0 {
		timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	return timeout
}

// Geometry returns the page geometry, filling unset fields from flow.DefaultGeometry.
func (p PDFConfig) Geometry() (g flow.Geometry) {
	g = flow.DefaultGeometry()
	if p.PageWidth > 0 {
		g.Width = p.PageWidth
	}
	if p.PageHeight > 0 {
		g.Height = p.PageHeight
	}
	if p.Margin > 0 {
		g.Margin = p.Margin
	}
	if p.LineHeight > 0 {
		g.LineHeight = p.LineHeight
	}
	return g
}

// Default returns a configuration that talks to a local completion worker.
func Default() (cfg Config) {
	cfg = Config{
		ListenAddr:  DefaultListenAddr,
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
		Completion: CompletionConfig{
			Provider:       ProviderWorker,
			WorkerURL:      "http://localhost:8788",
			TimeoutSeconds: 120,
		},
		Defaults: DefaultConfig{
			OutputDir: "./applications",
		},
	}
	return cfg
}

// DefaultPath returns ~/.resume-studio/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-studio", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
// A missing file at the default location yields Default(); a missing
// explicitly named file is an error.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	cfg = Default()

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = Unmarshal(path, data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-studio init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	applyEnv(&cfg)

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Unmarshal decodes YAML for .yaml/.yml paths and JSON otherwise.
func Unmarshal(path string, data []byte, v interface{}) (err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	return err
}

func applyEnv(cfg *Config) {
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.Completion.AnthropicAPIKey = apiKey
	}
	if workerURL := os.Getenv("RESUME_STUDIO_WORKER_URL"); workerURL != "" {
		cfg.Completion.WorkerURL = workerURL
	}
	if listen := os.Getenv("RESUME_STUDIO_LISTEN"); listen != "" {
		cfg.ListenAddr = listen
	}
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	switch c.Completion.Provider {
	case ProviderWorker:
		if c.Completion.WorkerURL == "" {
			err = errors.New("completion.worker_url is required for the worker provider (set in config or RESUME_STUDIO_WORKER_URL env var)")
			return err
		}
	case ProviderAnthropic:
		if c.Completion.AnthropicAPIKey == "" {
			err = errors.New("completion.anthropic_api_key is required (set in config or ANTHROPIC_API_KEY env var)")
			return err
		}
	default:
		err = errors.Errorf("unknown completion provider '%s': must be '%s' or '%s'", c.Completion.Provider, ProviderWorker, ProviderAnthropic)
		return err
	}

	err = c.PDF.Geometry().Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid pdf geometry")
		return err
	}

	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./applications"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Default()
	geometry := flow.DefaultGeometry()
	defaultConfig.PDF = PDFConfig{
		PageWidth:  geometry.Width,
		PageHeight: geometry.Height,
		Margin:     geometry.Margin,
		LineHeight: geometry.LineHeight,
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(defaultConfig)
	default:
		data, err = json.MarshalIndent(defaultConfig, "", "  ")
	}
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/export"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. CAMSCALE_DIR
	EnvPrefix = "CAMSCALE"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultPattern     = "PVT*.pdf"
	DefaultPolicy      = camscale.PolicyStrict
	DefaultFormat      = export.FormatXLSX
)

// Flag and configuration keys
const (
	KeyDirectory   = "dir"
	KeyPattern     = "pattern"
	KeyPolicy      = "policy"
	KeyLayout      = "layout"
	KeyLogLevel    = "loglevel"
	KeyMaxFileSize = "maxfilesize"
	KeyOutput      = "output"
	KeyFormat      = "format"
	KeyConfigFile  = "config"
)

// Config holds all configuration for the report tools
type Config struct {
	// Report discovery
	ReportDirectory string
	FilePattern     string
	MaxFileSize     int64 // Maximum report file size in bytes

	// Parsing
	Policy string // "strict" or "lenient"
	Layout string

	// Export
	OutputPath   string
	OutputFormat string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	ConfigFile string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		ReportDirectory: currentDir,
		FilePattern:     DefaultPattern,
		MaxFileSize:     DefaultMaxFileSize,
		Policy:          DefaultPolicy,
		Layout:          camscale.DefaultLayout,
		OutputFormat:    DefaultFormat,
		Version:         "1.0.0",
		ServerName:      "camscale-reports",
		LogLevel:        DefaultLogLevel,
	}
}

// RegisterFlags defines the configuration flags on fs with cfg's values as defaults
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String(KeyDirectory, cfg.ReportDirectory, "Directory containing report files")
	fs.String(KeyPattern, cfg.FilePattern, "Glob matching report file names (case-insensitive)")
	fs.String(KeyPolicy, cfg.Policy, "Failing report policy: 'strict' aborts, 'lenient' skips and records")
	fs.String(KeyLayout, cfg.Layout, fmt.Sprintf("Report layout %v", camscale.LayoutNames()))
	fs.String(KeyLogLevel, cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64(KeyMaxFileSize, cfg.MaxFileSize, "Maximum report file size in bytes")
	fs.String(KeyOutput, cfg.OutputPath, "Write the assembled table to this file")
	fs.String(KeyFormat, cfg.OutputFormat, fmt.Sprintf("Export format %v", export.Formats))
	fs.String(KeyConfigFile, cfg.ConfigFile, "Optional configuration file (yaml, json or toml)")
}

// Load builds a configuration from an already parsed flag set, the
// environment and an optional configuration file, in that precedence
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	populateConfigFromViper(v, cfg)

	if cfg.ReportDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.ReportDirectory); err == nil {
			cfg.ReportDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFlags parses the process command line and returns a configuration
func LoadFromFlags() (*Config, error) {
	RegisterFlags(pflag.CommandLine, DefaultConfig())
	setupUsageMessage()
	pflag.Parse()
	return Load(pflag.CommandLine)
}

// newViper configures a viper instance with environment variables and defaults
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyDirectory, cfg.ReportDirectory)
	v.SetDefault(KeyPattern, cfg.FilePattern)
	v.SetDefault(KeyPolicy, cfg.Policy)
	v.SetDefault(KeyLayout, cfg.Layout)
	v.SetDefault(KeyLogLevel, cfg.LogLevel)
	v.SetDefault(KeyMaxFileSize, cfg.MaxFileSize)
	v.SetDefault(KeyOutput, cfg.OutputPath)
	v.SetDefault(KeyFormat, cfg.OutputFormat)
	return v
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nCamScale report server - parses Bravos position verification and calibration reports\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CAMSCALE_DIR          Report directory\n")
		fmt.Fprintf(os.Stderr, "  CAMSCALE_PATTERN      Report file glob\n")
		fmt.Fprintf(os.Stderr, "  CAMSCALE_POLICY       strict or lenient\n")
		fmt.Fprintf(os.Stderr, "  CAMSCALE_LAYOUT       Report layout\n")
		fmt.Fprintf(os.Stderr, "  CAMSCALE_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  CAMSCALE_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.ReportDirectory = v.GetString(KeyDirectory)
	cfg.FilePattern = v.GetString(KeyPattern)
	cfg.Policy = v.GetString(KeyPolicy)
	cfg.Layout = v.GetString(KeyLayout)
	cfg.LogLevel = v.GetString(KeyLogLevel)
	cfg.MaxFileSize = v.GetInt64(KeyMaxFileSize)
	cfg.OutputPath = v.GetString(KeyOutput)
	cfg.OutputFormat = v.GetString(KeyFormat)
	cfg.ConfigFile = v.GetString(KeyConfigFile)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ReportDirectory == "" {
		return errors.New("report directory cannot be empty")
	}
	info, err := os.Stat(c.ReportDirectory)
	if os.IsNotExist(err) {
		return fmt.Errorf("report directory does not exist: %s", c.ReportDirectory)
	} else if err != nil {
		return fmt.Errorf("cannot access report directory %s: %w", c.ReportDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("report directory is not a directory: %s", c.ReportDirectory)
	}

	if c.FilePattern == "" {
		return errors.New("file pattern cannot be empty")
	}
	if _, err := filepath.Match(c.FilePattern, ""); err != nil {
		return fmt.Errorf("invalid file pattern %q: %w", c.FilePattern, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if _, err := camscale.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if _, err := camscale.LookupLayout(c.Layout); err != nil {
		return err
	}

	validFormat := false
	for _, f := range export.Formats {
		if c.OutputFormat == f {
			validFormat = true
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid export format: %s (must be one of: %v)", c.OutputFormat, export.Formats)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// ErrorPolicy returns the parsed failing report policy
func (c *Config) ErrorPolicy() camscale.Policy {
	p, _ := camscale.ParsePolicy(c.Policy)
	return p
}

// ReportLayout returns the configured layout, falling back to the default
func (c *Config) ReportLayout() camscale.Layout {
	l, err := camscale.LookupLayout(c.Layout)
	if err != nil {
		return camscale.BravosV1
	}
	return l
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{ReportDirectory: %s, FilePattern: %s, Policy: %s, Layout: %s, LogLevel: %s, MaxFileSize: %d, Output: %s (%s)}",
		c.ReportDirectory, c.FilePattern, c.Policy, c.Layout, c.LogLevel, c.MaxFileSize, c.OutputPath, c.OutputFormat)
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the project-local config file.
	FileName = ".testscribe.yaml"

	DefaultImageWidth          = 1000
	DefaultNotificationTimeout = 5 * time.Second
	DefaultLogLevel            = "info"
)

// Config holds the settings of a capture session.
type Config struct {
	ExportDir           string        `yaml:"export_dir"`
	ImageWidth          int           `yaml:"image_width"`
	NotificationTimeout time.Duration `yaml:"notification_timeout"`
	LogFile             string        `yaml:"log_file"`
	LogLevel            string        `yaml:"log_level"`
}

// Overrides are values given on the command line. Zero values are ignored.
type Overrides struct {
	ConfigPath string
	ExportDir  string
	ImageWidth int
	LogFile    string
	Verbose    bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ImageWidth:          DefaultImageWidth,
		NotificationTimeout: DefaultNotificationTimeout,
		LogFile:             filepath.Join(os.TempDir(), "testscribe.log"),
		LogLevel:            DefaultLogLevel,
	}
}

// Load builds the configuration for a session started in dir.
// Precedence: flags, then environment (including dir/.env), then the config
// file, then defaults.
func Load(dir string, o Overrides) Config {
	cfg := Default()

	path := o.ConfigPath
	if path == "" {
		path = findConfigFile(dir)
	}
	if path != "" {
		cfg = LoadFile(path, cfg)
	}

	// A missing .env is normal.
	_ = godotenv.Load(filepath.Join(dir, ".env"))
	cfg = applyEnv(cfg)

	if o.ExportDir != "" {
		cfg.ExportDir = o.ExportDir
	}
	if o.ImageWidth > 0 {
		cfg.ImageWidth = o.ImageWidth
	}
	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}

// LoadFile reads a YAML config on top of base. Unreadable or invalid files
// leave base untouched.
func LoadFile(path string, base Config) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return base
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return base
	}

	if fileCfg.ExportDir != "" {
		base.ExportDir = fileCfg.ExportDir
	}
	if fileCfg.ImageWidth > 0 {
		base.ImageWidth = fileCfg.ImageWidth
	}
	if fileCfg.NotificationTimeout > 0 {
		base.NotificationTimeout = fileCfg.NotificationTimeout
	}
	if fileCfg.LogFile != "" {
		base.LogFile = fileCfg.LogFile
	}
	if fileCfg.LogLevel != "" {
		base.LogLevel = fileCfg.LogLevel
	}
	return base
}

func findConfigFile(dir string) string {
	candidates := []string{filepath.Join(dir, FileName)}
	if userDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(userDir, "testscribe", "config.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv("TESTSCRIBE_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("TESTSCRIBE_IMAGE_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ImageWidth = n
		}
	}
	if v := os.Getenv("TESTSCRIBE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

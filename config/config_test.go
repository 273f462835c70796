package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Load(tmpDir, Overrides{ConfigPath: filepath.Join(tmpDir, "missing.yaml")})

	if cfg.ImageWidth != DefaultImageWidth {
		t.Errorf("expected image width %d, got %d", DefaultImageWidth, cfg.ImageWidth)
	}
	if cfg.NotificationTimeout != DefaultNotificationTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultNotificationTimeout, cfg.NotificationTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info level, got %q", cfg.LogLevel)
	}
}

func TestLoad_File(t *testing.T) {
	tmpDir := t.TempDir()

	content := `export_dir: /reports
image_width: 800
notification_timeout: 3s
log_level: warn
`
	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(tmpDir, Overrides{})

	if cfg.ExportDir != "/reports" {
		t.Errorf("expected export dir /reports, got %q", cfg.ExportDir)
	}
	if cfg.ImageWidth != 800 {
		t.Errorf("expected width 800, got %d", cfg.ImageWidth)
	}
	if cfg.NotificationTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.NotificationTimeout)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn, got %q", cfg.LogLevel)
	}
}

func TestLoadFile_InvalidKeepsBase(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(path, []byte("image_width: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}

	base := Default()
	cfg := LoadFile(path, base)
	if cfg != base {
		t.Errorf("expected base config, got %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("export_dir: /from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TESTSCRIBE_EXPORT_DIR", "/from-env")
	t.Setenv("TESTSCRIBE_IMAGE_WIDTH", "640")

	cfg := Load(tmpDir, Overrides{})

	if cfg.ExportDir != "/from-env" {
		t.Errorf("expected env export dir, got %q", cfg.ExportDir)
	}
	if cfg.ImageWidth != 640 {
		t.Errorf("expected width 640, got %d", cfg.ImageWidth)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("TESTSCRIBE_LOG_FILE=/tmp/from-dotenv.log\n"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("TESTSCRIBE_LOG_FILE")
	t.Cleanup(func() { os.Unsetenv("TESTSCRIBE_LOG_FILE") })

	cfg := Load(tmpDir, Overrides{})

	if cfg.LogFile != "/tmp/from-dotenv.log" {
		t.Errorf("expected log file from .env, got %q", cfg.LogFile)
	}
}

func TestLoad_FlagsWin(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TESTSCRIBE_EXPORT_DIR", "/from-env")

	cfg := Load(tmpDir, Overrides{
		ExportDir:  "/from-flag",
		ImageWidth: 1200,
		LogFile:    "/tmp/flag.log",
		Verbose:    true,
	})

	if cfg.ExportDir != "/from-flag" {
		t.Errorf("expected flag export dir, got %q", cfg.ExportDir)
	}
	if cfg.ImageWidth != 1200 {
		t.Errorf("expected width 1200, got %d", cfg.ImageWidth)
	}
	if cfg.LogFile != "/tmp/flag.log" {
		t.Errorf("expected flag log file, got %q", cfg.LogFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug level, got %q", cfg.LogLevel)
	}
}

func TestLoad_BadEnvWidthIgnored(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TESTSCRIBE_IMAGE_WIDTH", "wide")

	cfg := Load(tmpDir, Overrides{})
	if cfg.ImageWidth != DefaultImageWidth {
		t.Errorf("expected default width, got %d", cfg.ImageWidth)
	}
}

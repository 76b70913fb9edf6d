package tessel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/tessel/internal/errors"
)

func TestConfigDefaults(t *testing.T) {
	tests := []struct {
		name  string
		in    Config
		check func(t *testing.T, c Config)
	}{
		{"zero value", Config{}, func(t *testing.T, c Config) {
			if c.MaxFPS != DefaultMaxFPS || c.ClickTolerance != 1 || c.ResizeDebounce != DefaultResizeDebounce || c.FlushPasses != DefaultFlushPasses {
				t.Errorf("defaults = %+v", c)
			}
			if c.Logger == nil {
				t.Error("Logger should default to slog.Default()")
			}
		}},
		{"negative disables", Config{MaxFPS: -1, ClickTolerance: -1, ResizeDebounce: -1}, func(t *testing.T, c Config) {
			if c.MaxFPS != 0 || c.ClickTolerance != 0 || c.ResizeDebounce != 0 {
				t.Errorf("got %+v", c)
			}
		}},
		{"explicit kept", Config{MaxFPS: 30, ClickTolerance: 3, ResizeDebounce: time.Second}, func(t *testing.T, c Config) {
			if c.MaxFPS != 30 || c.ClickTolerance != 3 || c.ResizeDebounce != time.Second {
				t.Errorf("got %+v", c)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.in.withDefaults())
		})
	}
}

func TestConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	data := `{
  "maxFps": 30,
  "clickTolerance": 0,
  "tabNavigation": false,
  "strict": true,
  "resizeDebounceMs": 10,
  "mouse": false,
  "log": {"file": "logs/tessel.log", "level": "debug"},
  "devtools": {"enabled": true, "addr": "127.0.0.1:9999"},
  "metrics": {"namespace": "demo"}
}`
	if err := os.WriteFile(filepath.Join(dir, "tessel.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	// Relative log paths resolve against the working directory.
	t.Chdir(dir)

	cfg, closeLog, err := ConfigFromFile(dir)
	if err != nil {
		t.Fatalf("ConfigFromFile() error = %v", err)
	}
	defer closeLog()

	if cfg.MaxFPS != 30 {
		t.Errorf("MaxFPS = %d", cfg.MaxFPS)
	}
	if cfg.ClickTolerance != -1 {
		t.Errorf("ClickTolerance = %d, want -1 for exact clicks", cfg.ClickTolerance)
	}
	if !cfg.DisableTabNavigation || !cfg.Strict || cfg.Mouse || !cfg.AltScreen {
		t.Errorf("flags = %+v", cfg)
	}
	if cfg.ResizeDebounce != 10*time.Millisecond {
		t.Errorf("ResizeDebounce = %v", cfg.ResizeDebounce)
	}
	if cfg.DevtoolsAddr != "127.0.0.1:9999" {
		t.Errorf("DevtoolsAddr = %q", cfg.DevtoolsAddr)
	}
	if cfg.Metrics == nil {
		t.Fatal("Metrics not created")
	}

	cfg.Logger.Info("hello")
	if _, err := os.Stat(filepath.Join(dir, "logs", "tessel.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestConfigFromFileMissingUsesDefaults(t *testing.T) {
	cfg, closeLog, err := ConfigFromFile(t.TempDir())
	if err != nil {
		t.Fatalf("ConfigFromFile() error = %v", err)
	}
	defer closeLog()
	if cfg.MaxFPS != DefaultMaxFPS || cfg.DisableTabNavigation || cfg.DevtoolsAddr != "" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tessel.json"), []byte(`{"maxFps": 1000}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := ConfigFromFile(dir)
	if !errors.HasCode(err, "T021") {
		t.Errorf("err = %v, want T021", err)
	}
}

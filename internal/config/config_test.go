package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "REQUEST_TIMEOUT", "IMAGE_FETCH_TIMEOUT",
		"MAX_REQUEST_BODY_SIZE", "SCORE_WORKERS", "REPORTS_DIR", "HISTORY_DB"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Errorf("default port: got %s, want 8080", cfg.Port)
	}
	if cfg.RequestTimeout != 120*time.Second {
		t.Errorf("default request timeout: got %s", cfg.RequestTimeout)
	}
	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("server address: got %s", cfg.ServerAddress())
	}
	if cfg.ReportsDir != "reports" {
		t.Errorf("default reports dir: got %s", cfg.ReportsDir)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SCORE_WORKERS", "3")
	t.Setenv("IMAGE_FETCH_TIMEOUT", "5s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9000" || cfg.Workers != 3 || cfg.ImageFetchTimeout != 5*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFromEnvInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("invalid port must fail validation")
	}
}

func TestLoadScoreConfigDefaults(t *testing.T) {
	cfg, err := LoadScoreConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxShiftPx != 5.0 || cfg.SingleIssueCap != 30.0 {
		t.Errorf("defaults: got %+v", cfg)
	}
}

func TestLoadScoreConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "score.yaml")
	content := "max_shift_px: 3.0\nink_min_size: 50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadScoreConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxShiftPx != 3.0 || cfg.InkMinSize != 50 {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	// Untouched fields keep their calibrated defaults.
	if cfg.SingleIssueMinGain != 15.0 {
		t.Errorf("untouched field changed: %f", cfg.SingleIssueMinGain)
	}
	if cfg.Weights.InkF1 != 0.20 {
		t.Errorf("weights should stay at defaults: %+v", cfg.Weights)
	}
}

func TestLoadScoreConfigZeroWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "score.yaml")
	content := "weights:\n  ssim_full: 0\n  ssim_small: 0\n  ink_f1: 0\n  edge_iou: 0\n  color_sim: 0\n  blob_sim: 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScoreConfig(path); err == nil {
		t.Error("all-zero weights must be rejected")
	}
}

func TestLoadScoreConfigMissingFile(t *testing.T) {
	if _, err := LoadScoreConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file must fail")
	}
}

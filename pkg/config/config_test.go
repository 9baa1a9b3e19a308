package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Alpha != 0.98 {
		t.Errorf("Alpha = %v, expected 0.98", cfg.Alpha)
	}
	if cfg.ObstacleThresholdIn != 12.0 {
		t.Errorf("ObstacleThresholdIn = %v, expected 12", cfg.ObstacleThresholdIn)
	}
	if cfg.LeftPWM != 40 || cfg.RightPWM != 50 {
		t.Errorf("PWM defaults = %d/%d, expected 40/50", cfg.LeftPWM, cfg.RightPWM)
	}
	if cfg.PulseCorrection != 5.05 {
		t.Errorf("PulseCorrection = %v, expected 5.05", cfg.PulseCorrection)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridbot.yaml")
	overlay := "alpha: 0.95\nleftpwm: 60\nobstaclethresholdin: 10\n"
	if err := os.WriteFile(path, []byte(overlay), 0666); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Alpha != 0.95 {
		t.Errorf("Alpha = %v, expected overlaid 0.95", cfg.Alpha)
	}
	if cfg.LeftPWM != 60 {
		t.Errorf("LeftPWM = %v, expected overlaid 60", cfg.LeftPWM)
	}
	if cfg.ObstacleThresholdIn != 10 {
		t.Errorf("ObstacleThresholdIn = %v, expected overlaid 10", cfg.ObstacleThresholdIn)
	}
	// Untouched keys keep their defaults.
	if cfg.RightPWM != 50 {
		t.Errorf("RightPWM = %v, expected default 50", cfg.RightPWM)
	}

	// The in-use copy must round-trip the overlaid values.
	inUse := filepath.Join(dir, "gridbot-in-use.yaml")
	if _, err := os.Stat(inUse); err != nil {
		t.Fatalf("in-use config not written: %v", err)
	}
	again := Load(inUse)
	if again.Alpha != 0.95 || again.LeftPWM != 60 {
		t.Errorf("in-use config did not round-trip: %+v", again)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if cfg != Default() {
		t.Errorf("missing file changed the config: %+v", cfg)
	}
}

func TestLoadBadYAMLUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridbot.yaml")
	if err := os.WriteFile(path, []byte("alpha: [not a number"), 0666); err != nil {
		t.Fatal(err)
	}
	if cfg := Load(path); cfg != Default() {
		t.Errorf("bad file changed the config: %+v", cfg)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scanscheduler.yaml")

	tests := []struct {
		name      string
		setup     func()
		validate  func(*testing.T, *Config)
		checkFile func(*testing.T)
	}{
		{
			name:  "NewFile_Defaults",
			setup: func() {}, // No file
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Scheduler.Name != "speedscan" {
					t.Errorf("expected default scheduler 'speedscan', got '%s'", cfg.Scheduler.Name)
				}
				if cfg.Scheduler.StepLimit != 10 {
					t.Errorf("expected default step_limit 10, got %d", cfg.Scheduler.StepLimit)
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if !strings.Contains(string(content), "name: speedscan") {
					t.Error("config file missing default scheduler name")
				}
			},
		},
		{
			name: "ExistingFile_Override",
			setup: func() {
				err := os.WriteFile(configPath, []byte("scheduler:\n  name: hexsearch\n  step_limit: 5\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Scheduler.Name != "hexsearch" {
					t.Errorf("expected scheduler 'hexsearch', got '%s'", cfg.Scheduler.Name)
				}
				if cfg.Scheduler.StepLimit != 5 {
					t.Errorf("expected step_limit 5, got %d", cfg.Scheduler.StepLimit)
				}
			},
			checkFile: func(t *testing.T) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Remove(configPath)
			tt.setup()

			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.validate(t, cfg)
			tt.checkFile(t)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		wantSec float64
	}{
		{"10s", 10},
		{"2m", 120},
		{"1h", 3600},
		{"1d", 86400},
	}
	for _, tt := range tests {
		d, err := ParseDuration(tt.in)
		if err != nil {
			t.Fatalf("ParseDuration(%q) error: %v", tt.in, err)
		}
		if d.Seconds() != tt.wantSec {
			t.Errorf("ParseDuration(%q) = %vs, want %vs", tt.in, d.Seconds(), tt.wantSec)
		}
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"70m", 70},
		{"0.9km", 900},
		{"1nm", 1852},
	}
	for _, tt := range tests {
		got, err := ParseDistance(tt.in)
		if err != nil {
			t.Fatalf("ParseDistance(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDistance(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

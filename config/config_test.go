package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EYELASER_AUDIO_ENABLED",
		"EYELASER_MASTER_VOLUME",
		"EYELASER_FEED_SOURCE",
		"EYELASER_FEED_LISTEN",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eyelaser.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// TestDefaultConfig verifies the stock tuning values
func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Game.SpawnProbability != 0.02 {
		t.Errorf("Expected spawn probability 0.02, got %f", cfg.Game.SpawnProbability)
	}
	if cfg.Game.SpeedMin != 1 || cfg.Game.SpeedMax != 3 {
		t.Errorf("Expected speed range [1,3], got [%f,%f]", cfg.Game.SpeedMin, cfg.Game.SpeedMax)
	}
	if cfg.Game.DiameterMin != 25 || cfg.Game.DiameterMax != 60 {
		t.Errorf("Expected diameter range [25,60], got [%f,%f]", cfg.Game.DiameterMin, cfg.Game.DiameterMax)
	}
	if cfg.Game.CullMargin != 100 || cfg.Game.SpawnOffset != 20 || cfg.Game.BeamLength != 1000 {
		t.Errorf("Unexpected geometry defaults: %+v", cfg.Game)
	}
	if !cfg.Game.Scoring {
		t.Error("Expected scoring variant by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[game]
spawn_probability = 0.1
scoring = false
seed = 42

[display]
frame_interval = "20ms"

[feed]
source = "replay"
replay_path = "session.jsonl"
replay_loop = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.SpawnProbability != 0.1 {
		t.Errorf("Expected spawn probability 0.1, got %f", cfg.Game.SpawnProbability)
	}
	if cfg.Game.Scoring {
		t.Error("Expected scoring disabled")
	}
	if cfg.Game.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Game.Seed)
	}
	if cfg.Display.FrameInterval != 20*time.Millisecond {
		t.Errorf("Expected 20ms frame interval, got %v", cfg.Display.FrameInterval)
	}
	if cfg.Feed.Source != SourceReplay || cfg.Feed.ReplayPath != "session.jsonl" || cfg.Feed.ReplayLoop {
		t.Errorf("Unexpected feed section: %+v", cfg.Feed)
	}
	// Untouched keys keep defaults
	if cfg.Game.SpeedMax != 3 {
		t.Errorf("Expected default speed max, got %f", cfg.Game.SpeedMax)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[game]\nspawn_rate = 0.5\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "game.spawn_rate") {
		t.Errorf("Expected key name in error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("EYELASER_AUDIO_ENABLED", "false")
	t.Setenv("EYELASER_MASTER_VOLUME", "150")
	t.Setenv("EYELASER_FEED_SOURCE", "websocket")
	t.Setenv("EYELASER_FEED_LISTEN", ":9000")

	cfg := Default()
	ApplyEnv(&cfg)

	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled from env")
	}
	if cfg.Audio.MasterVolume != 1 {
		t.Errorf("Expected master volume clamped to 1, got %f", cfg.Audio.MasterVolume)
	}
	if cfg.Feed.Source != SourceWebsocket || cfg.Feed.Listen != ":9000" {
		t.Errorf("Unexpected feed from env: %+v", cfg.Feed)
	}
}

func TestApplyEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("EYELASER_AUDIO_ENABLED", "maybe")
	t.Setenv("EYELASER_MASTER_VOLUME", "loud")

	cfg := Default()
	ApplyEnv(&cfg)

	if !cfg.Audio.Enabled || cfg.Audio.MasterVolume != Default().Audio.MasterVolume {
		t.Errorf("Invalid env values should be ignored, got %+v", cfg.Audio)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"probability above one", func(c *Config) { c.Game.SpawnProbability = 1.5 }},
		{"inverted speed", func(c *Config) { c.Game.SpeedMin, c.Game.SpeedMax = 3, 1 }},
		{"zero diameter", func(c *Config) { c.Game.DiameterMin = 0 }},
		{"cull inside spawn", func(c *Config) { c.Game.CullMargin = 10 }},
		{"zero beam", func(c *Config) { c.Game.BeamLength = 0 }},
		{"zero frame interval", func(c *Config) { c.Display.FrameInterval = 0 }},
		{"zero cell", func(c *Config) { c.Display.CellHeight = 0 }},
		{"volume", func(c *Config) { c.Audio.MasterVolume = -0.1 }},
		{"unknown source", func(c *Config) { c.Feed.Source = "camera" }},
		{"replay without path", func(c *Config) { c.Feed.Source = SourceReplay }},
		{"websocket without listen", func(c *Config) { c.Feed.Source, c.Feed.Listen = SourceWebsocket, "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoad_OverridesApplyBeforeValidation(t *testing.T) {
	clearEnv(t)

	t.Setenv("EYELASER_FEED_SOURCE", SourceReplay)
	if _, err := Load(""); err == nil {
		t.Fatal("Expected replay without a path to fail")
	}

	cfg, err := Load("", func(c *Config) { c.Feed.ReplayPath = "poses.jsonl" })
	if err != nil {
		t.Fatalf("Override should satisfy validation: %v", err)
	}
	if cfg.Feed.Source != SourceReplay || cfg.Feed.ReplayPath != "poses.jsonl" {
		t.Errorf("Unexpected feed %+v", cfg.Feed)
	}
}

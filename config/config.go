// Package config loads game settings from a TOML file with environment overrides
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/eyelaser/constants"
)

// Pose feed sources
const (
	SourcePuppet    = "puppet"
	SourceWebsocket = "websocket"
	SourceReplay    = "replay"
)

// Config is the root of the TOML document
type Config struct {
	Game    Game    `toml:"game"`
	Display Display `toml:"display"`
	Audio   Audio   `toml:"audio"`
	Feed    Feed    `toml:"feed"`
}

// Game holds simulation tuning
type Game struct {
	SpawnProbability float64 `toml:"spawn_probability"`
	SpeedMin         float64 `toml:"speed_min"`
	SpeedMax         float64 `toml:"speed_max"`
	DiameterMin      float64 `toml:"diameter_min"`
	DiameterMax      float64 `toml:"diameter_max"`
	SpawnOffset      float64 `toml:"spawn_offset"`
	CullMargin       float64 `toml:"cull_margin"`
	BeamLength       float64 `toml:"beam_length"`
	// Scoring selects the scoring variant: beams score by radius, head hits bank the score
	Scoring bool `toml:"scoring"`
	// Seed makes runs reproducible when non-zero
	Seed uint64 `toml:"seed"`
}

// Display holds terminal mapping and pacing
type Display struct {
	FrameInterval time.Duration `toml:"frame_interval"`
	CellWidth     float64       `toml:"cell_width"`
	CellHeight    float64       `toml:"cell_height"`
}

// Audio holds sound settings
type Audio struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
	SampleRate   int     `toml:"sample_rate"`
}

// Feed selects and configures the pose source
type Feed struct {
	Source         string        `toml:"source"`
	Listen         string        `toml:"listen"`
	ReplayPath     string        `toml:"replay_path"`
	ReplayInterval time.Duration `toml:"replay_interval"`
	ReplayLoop     bool          `toml:"replay_loop"`
	PuppetInterval time.Duration `toml:"puppet_interval"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Game: Game{
			SpawnProbability: constants.SpawnProbability,
			SpeedMin:         constants.AsteroidSpeedMin,
			SpeedMax:         constants.AsteroidSpeedMax,
			DiameterMin:      constants.AsteroidDiameterMin,
			DiameterMax:      constants.AsteroidDiameterMax,
			SpawnOffset:      constants.SpawnOffset,
			CullMargin:       constants.CullMargin,
			BeamLength:       constants.BeamLength,
			Scoring:          true,
		},
		Display: Display{
			FrameInterval: constants.FrameUpdateInterval,
			CellWidth:     constants.CellWidth,
			CellHeight:    constants.CellHeight,
		},
		Audio: Audio{
			Enabled:      true,
			MasterVolume: 0.6,
			SampleRate:   44100,
		},
		Feed: Feed{
			Source:         SourcePuppet,
			Listen:         "127.0.0.1:8765",
			ReplayInterval: constants.DetectionInterval,
			ReplayLoop:     true,
			PuppetInterval: constants.DetectionInterval,
		},
	}
}

// Load reads path over the defaults, applies environment overrides, then overrides, and validates
// An empty path skips the file
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	ApplyEnv(&cfg)
	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from EYELASER_* environment variables
// Unparseable values are ignored
func ApplyEnv(cfg *Config) {
	if enabled := os.Getenv("EYELASER_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Audio.Enabled = val
		}
	}

	// Master volume is 0-100 in the environment, 0.0-1.0 in the config
	if volume := os.Getenv("EYELASER_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Audio.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	if source := os.Getenv("EYELASER_FEED_SOURCE"); source != "" {
		cfg.Feed.Source = source
	}

	if listen := os.Getenv("EYELASER_FEED_LISTEN"); listen != "" {
		cfg.Feed.Listen = listen
	}
}

// Validate rejects settings the simulation cannot run with
func (c Config) Validate() error {
	g := c.Game
	if g.SpawnProbability < 0 || g.SpawnProbability > 1 {
		return errors.Errorf("game.spawn_probability %g outside [0,1]", g.SpawnProbability)
	}
	if g.SpeedMin < 0 || g.SpeedMax < g.SpeedMin {
		return errors.Errorf("game speed range [%g,%g] invalid", g.SpeedMin, g.SpeedMax)
	}
	if g.DiameterMin <= 0 || g.DiameterMax < g.DiameterMin {
		return errors.Errorf("game diameter range [%g,%g] invalid", g.DiameterMin, g.DiameterMax)
	}
	if g.SpawnOffset <= 0 {
		return errors.Errorf("game.spawn_offset %g must be positive", g.SpawnOffset)
	}
	if g.CullMargin < g.SpawnOffset {
		return errors.Errorf("game.cull_margin %g must not be less than spawn_offset %g", g.CullMargin, g.SpawnOffset)
	}
	if g.BeamLength <= 0 {
		return errors.Errorf("game.beam_length %g must be positive", g.BeamLength)
	}

	d := c.Display
	if d.FrameInterval <= 0 {
		return errors.New("display.frame_interval must be positive")
	}
	if d.CellWidth <= 0 || d.CellHeight <= 0 {
		return errors.Errorf("display cell size %gx%g must be positive", d.CellWidth, d.CellHeight)
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return errors.Errorf("audio.master_volume %g outside [0,1]", c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return errors.Errorf("audio.sample_rate %d must be positive", c.Audio.SampleRate)
	}

	f := c.Feed
	switch f.Source {
	case SourcePuppet:
		if f.PuppetInterval <= 0 {
			return errors.New("feed.puppet_interval must be positive")
		}
	case SourceWebsocket:
		if f.Listen == "" {
			return errors.New("feed.listen is required for the websocket source")
		}
	case SourceReplay:
		if f.ReplayPath == "" {
			return errors.New("feed.replay_path is required for the replay source")
		}
		if f.ReplayInterval <= 0 {
			return errors.New("feed.replay_interval must be positive")
		}
	default:
		return errors.Errorf("feed.source %q unknown (want %s, %s or %s)", f.Source, SourcePuppet, SourceWebsocket, SourceReplay)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

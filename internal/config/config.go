package config

import (
	"fmt"
	"os"
	"slices"

	"atc-radar/internal/game/airspace"
	"atc-radar/internal/game/gamestate"
	"atc-radar/internal/game/simulation"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Traffic    TrafficConfig    `yaml:"traffic"`
	Airfield   AirfieldConfig   `yaml:"airfield"`
	Game       GameConfig       `yaml:"game"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
	Players    PlayersConfig    `yaml:"players"`
	Log        LogConfig        `yaml:"log"`
	Window     WindowConfig     `yaml:"window"`
}

type TrafficConfig struct {
	MaxAircraft       int     `yaml:"max_aircraft"`
	SpawnIntervalMs   float64 `yaml:"spawn_interval_ms"`
	StageBaseAircraft int     `yaml:"stage_base_aircraft"`
	StageAircraftStep int     `yaml:"stage_aircraft_step"`
	RadioLogSize      int     `yaml:"radio_log_size"`
}

type AirfieldConfig struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Length  float64 `yaml:"length"`
	WidthPx float64 `yaml:"width_px"`
	WindDeg float64 `yaml:"wind_deg"`
}

type GameConfig struct {
	Difficulty           string   `yaml:"difficulty"`
	DifficultyLevels     []string `yaml:"difficulty_levels"`
	ExperienceThresholds []int    `yaml:"experience_thresholds"`
	Seed                 int64    `yaml:"seed"`
}

type ScoreboardConfig struct {
	Path            string `yaml:"path"`
	TopLimit        int    `yaml:"top_limit"`
	RequireCallsign *bool  `yaml:"require_callsign"`
}

type PlayersConfig struct {
	MaxPlayers int `yaml:"max_players"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

var logLevels = []string{"debug", "info", "warn", "error", "off"}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	if err := cfg.applyDefaults(); err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() error {
	def := simulation.DefaultOptions()
	if cfg.Traffic.MaxAircraft < 0 {
		return fmt.Errorf("traffic.max_aircraft must be >= 0")
	}
	if cfg.Traffic.MaxAircraft == 0 {
		cfg.Traffic.MaxAircraft = def.MaxAircraft
	}
	if cfg.Traffic.SpawnIntervalMs < 0 {
		return fmt.Errorf("traffic.spawn_interval_ms must be > 0")
	}
	if cfg.Traffic.SpawnIntervalMs == 0 {
		cfg.Traffic.SpawnIntervalMs = def.SpawnInterval
	}
	if cfg.Traffic.StageBaseAircraft <= 0 {
		cfg.Traffic.StageBaseAircraft = def.StageBaseAircraft
	}
	if cfg.Traffic.StageAircraftStep <= 0 {
		cfg.Traffic.StageAircraftStep = def.StageAircraftStep
	}
	if cfg.Traffic.RadioLogSize <= 0 {
		cfg.Traffic.RadioLogSize = def.RadioLogSize
	}

	if cfg.Airfield.ID == "" {
		cfg.Airfield.ID = "EPWA"
	}
	if cfg.Airfield.Name == "" {
		cfg.Airfield.Name = "Radar Field"
	}
	if cfg.Airfield.CenterX == 0 {
		cfg.Airfield.CenterX = 0.5
	}
	if cfg.Airfield.CenterY == 0 {
		cfg.Airfield.CenterY = 0.5
	}
	if cfg.Airfield.Length == 0 {
		cfg.Airfield.Length = 0.2
	}
	if cfg.Airfield.WidthPx == 0 {
		cfg.Airfield.WidthPx = 20
	}
	if cfg.Airfield.CenterX < 0 || cfg.Airfield.CenterX > 1 || cfg.Airfield.CenterY < 0 || cfg.Airfield.CenterY > 1 {
		return fmt.Errorf("airfield.center_x and airfield.center_y must be within 0..1")
	}
	if cfg.Airfield.Length < 0 || cfg.Airfield.Length > 1 {
		return fmt.Errorf("airfield.length must be within 0..1")
	}
	if cfg.Airfield.WidthPx < 0 {
		return fmt.Errorf("airfield.width_px must be > 0")
	}

	if len(cfg.Game.DifficultyLevels) == 0 {
		cfg.Game.DifficultyLevels = slices.Clone(gamestate.DefaultDifficultyLevels)
	}
	if len(cfg.Game.ExperienceThresholds) == 0 {
		cfg.Game.ExperienceThresholds = slices.Clone(gamestate.DefaultExperienceThresholds)
	}
	if cfg.Game.Difficulty == "" {
		cfg.Game.Difficulty = cfg.Game.DifficultyLevels[0]
	}

	if cfg.Scoreboard.TopLimit <= 0 {
		cfg.Scoreboard.TopLimit = 5
	}
	if cfg.Scoreboard.RequireCallsign == nil {
		require := true
		cfg.Scoreboard.RequireCallsign = &require
	}

	if cfg.Players.MaxPlayers <= 0 {
		cfg.Players.MaxPlayers = 1
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, off")
	}

	if cfg.Window.Width <= 0 {
		cfg.Window.Width = 1024
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = 768
	}
	return nil
}

func (cfg Config) TrafficOptions() simulation.Options {
	return simulation.Options{
		MaxAircraft:       cfg.Traffic.MaxAircraft,
		SpawnInterval:     cfg.Traffic.SpawnIntervalMs,
		StageBaseAircraft: cfg.Traffic.StageBaseAircraft,
		StageAircraftStep: cfg.Traffic.StageAircraftStep,
		RadioLogSize:      cfg.Traffic.RadioLogSize,
	}
}

func (cfg Config) Airport() *airspace.Airport {
	ap := airspace.NewAirport(cfg.Airfield.ID, cfg.Airfield.Name, airspace.RunwayLayout{
		CenterX: cfg.Airfield.CenterX,
		CenterY: cfg.Airfield.CenterY,
		Length:  cfg.Airfield.Length,
		Width:   cfg.Airfield.WidthPx,
	})
	ap.SetWind(cfg.Airfield.WindDeg)
	return ap
}

func (cfg Config) GameState() gamestate.Config {
	return gamestate.Config{
		DifficultyLevels:     cfg.Game.DifficultyLevels,
		ExperienceThresholds: cfg.Game.ExperienceThresholds,
		Difficulty:           cfg.Game.Difficulty,
	}
}

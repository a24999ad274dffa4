package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/iburimskiy/ecg-monitor/internal/pathology"
)

// Physiological bounds for user-facing parameters. The synthesizer trusts
// its inputs; everything entering from flags, config files or dialogs goes
// through the clamp helpers below first.
const (
	MinHeartRate      = 30
	MaxHeartRate      = 300
	FallbackAmplitude = 0.1
)

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	LogFile string `mapstructure:"log_file"`
}

// MonitorConfig holds display and audio settings.
type MonitorConfig struct {
	WindowWidth  int     `mapstructure:"window_width"`
	WindowHeight int     `mapstructure:"window_height"`
	SweepSpeed   float64 `mapstructure:"sweep_speed"` // trace columns advanced per tick
	BeepEnabled  bool    `mapstructure:"beep_enabled"`
}

// SynthesisConfig holds the startup signal parameters; flags override it.
// Zero (or, for noise, negative) means "use the catalog preset".
type SynthesisConfig struct {
	Pathology  string  `mapstructure:"pathology"`
	HeartRate  float64 `mapstructure:"heart_rate"`
	Amplitude  float64 `mapstructure:"amplitude"`
	Noise      float64 `mapstructure:"noise"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Synthesis SynthesisConfig `mapstructure:"synthesis"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("monitor.window_width", 1024)
	v.SetDefault("monitor.window_height", 512)
	v.SetDefault("monitor.sweep_speed", 3.0)
	v.SetDefault("monitor.beep_enabled", true)
	v.SetDefault("synthesis.pathology", string(pathology.Normal))
	v.SetDefault("synthesis.heart_rate", 0)
	v.SetDefault("synthesis.amplitude", 0)
	v.SetDefault("synthesis.noise", -1)
	v.SetDefault("synthesis.sample_rate", 0)
}

// Load reads config.yaml (or cfgFile when given) plus ECGMON_* env vars.
// A missing config file is fine; defaults cover everything.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ECGMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// ClampHeartRate bounds a heart rate to [30,300] bpm.
func ClampHeartRate(bpm float64) float64 {
	if bpm < MinHeartRate {
		return MinHeartRate
	}
	if bpm > MaxHeartRate {
		return MaxHeartRate
	}
	return bpm
}

// NormalizeAmplitude substitutes a small positive default for non-positive
// amplitudes.
func NormalizeAmplitude(a float64) float64 {
	if a <= 0 {
		return FallbackAmplitude
	}
	return a
}

// ClampNoise floors noise at zero.
func ClampNoise(n float64) float64 {
	if n < 0 {
		return 0
	}
	return n
}

// NormalizePathology maps unknown identifiers to Normal.
func NormalizePathology(raw string) pathology.ID {
	id := pathology.ID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := pathology.Lookup(id); ok {
		return id
	}
	return pathology.Normal
}

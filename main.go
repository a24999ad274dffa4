package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/ecg-monitor/internal/config"
	"github.com/iburimskiy/ecg-monitor/internal/game"
	"github.com/iburimskiy/ecg-monitor/internal/observability"
	"github.com/iburimskiy/ecg-monitor/internal/pathology"
	"github.com/iburimskiy/ecg-monitor/internal/waveform"
)

var (
	cfgFile       string
	flagPathology string
	flagRate      float64
	flagAmplitude float64
	flagNoise     float64

	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ecg-monitor",
	Short: "Simulated Lead II ECG monitor for 28 cardiac rhythms.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			observability.Initialize(config.LoggerConfig{Level: "info", Format: "console"}, nil)
			return err
		}
		appConfig = cfg
		observability.Initialize(cfg.Logger, nil)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonitor()
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the pathology catalog.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pathology.CatalogError(); err != nil {
			return err
		}
		for _, id := range pathology.All() {
			preset, _ := pathology.Lookup(id)
			fmt.Printf("%-30s %-42s %3.0f bpm\n", id, preset.Name, preset.HeartRate)
		}
		return nil
	},
}

func runMonitor() error {
	logger := observability.GetLogger()
	if err := pathology.CatalogError(); err != nil {
		return err
	}

	// Flags beat the config file; the catalog preset fills whatever is left.
	syn := appConfig.Synthesis
	if flagPathology != "" {
		syn.Pathology = flagPathology
	}
	if flagRate > 0 {
		syn.HeartRate = flagRate
	}
	if flagAmplitude > 0 {
		syn.Amplitude = flagAmplitude
	}
	if flagNoise >= 0 {
		syn.Noise = flagNoise
	}

	id := config.NormalizePathology(syn.Pathology)
	if string(id) != strings.ToLower(strings.TrimSpace(syn.Pathology)) {
		logger.Warn("unknown pathology, falling back to normal", zap.String("requested", syn.Pathology))
	}
	preset, _ := pathology.Lookup(id)
	if syn.HeartRate <= 0 {
		syn.HeartRate = preset.HeartRate
	}
	if syn.Amplitude <= 0 {
		syn.Amplitude = preset.Amplitude
	}
	if syn.Noise < 0 {
		syn.Noise = preset.Noise
	}
	if syn.SampleRate <= 0 {
		syn.SampleRate = preset.SampleRate
	}

	cfg := waveform.Config{
		Pathology:  id,
		HeartRate:  config.ClampHeartRate(syn.HeartRate),
		Amplitude:  config.NormalizeAmplitude(syn.Amplitude),
		Noise:      config.ClampNoise(syn.Noise),
		SampleRate: syn.SampleRate,
	}

	synth := waveform.NewSynthesizer(pathology.NewResolver())
	monitor := game.New(appConfig.Monitor, cfg, synth, logger)

	ebiten.SetWindowSize(appConfig.Monitor.WindowWidth, appConfig.Monitor.WindowHeight)
	ebiten.SetWindowTitle("ECG Monitor - Lead II")

	if err := ebiten.RunGame(monitor); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().StringVar(&flagPathology, "pathology", "", "pathology identifier (see 'list')")
	rootCmd.Flags().Float64Var(&flagRate, "rate", 0, "heart rate in bpm, clamped to [30,300]")
	rootCmd.Flags().Float64Var(&flagAmplitude, "amplitude", 0, "trace amplitude scale")
	rootCmd.Flags().Float64Var(&flagNoise, "noise", -1, "baseline noise amplitude")
	rootCmd.AddCommand(listCmd)
}

func main() {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

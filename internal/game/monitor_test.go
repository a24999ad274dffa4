package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iburimskiy/ecg-monitor/internal/config"
	"github.com/iburimskiy/ecg-monitor/internal/pathology"
	"github.com/iburimskiy/ecg-monitor/internal/waveform"
)

func newTestMonitor(t *testing.T) *Monitor {
	t.Helper()
	view := config.MonitorConfig{WindowWidth: 100, WindowHeight: 50, SweepSpeed: 3}
	cfg := waveform.Config{
		Pathology:  pathology.Normal,
		HeartRate:  72,
		Amplitude:  1.0,
		Noise:      0.02,
		SampleRate: 250,
	}
	return New(view, cfg, waveform.NewSynthesizer(pathology.NewResolver()), zap.NewNop())
}

func TestDrainPicker(t *testing.T) {
	t.Run("a chosen pathology is applied with its preset", func(t *testing.T) {
		m := newTestMonitor(t)
		m.pickerOpen = true
		m.pickerCh <- pickerResult{id: pathology.AtrialFlutter}
		m.drainPicker()

		preset, ok := pathology.Lookup(pathology.AtrialFlutter)
		require.True(t, ok)
		assert.False(t, m.pickerOpen)
		assert.Equal(t, pathology.AtrialFlutter, m.cfg.Pathology)
		assert.Equal(t, preset.HeartRate, m.cfg.HeartRate)
		assert.Equal(t, preset.SampleRate, m.cfg.SampleRate)
	})

	t.Run("a dialog error surfaces on the game loop side", func(t *testing.T) {
		m := newTestMonitor(t)
		m.pickerOpen = true
		dialogErr := errors.New("no display")
		m.pickerCh <- pickerResult{err: dialogErr}
		m.drainPicker()

		assert.False(t, m.pickerOpen)
		assert.Equal(t, dialogErr, m.lastErr)
		assert.Equal(t, pathology.Normal, m.cfg.Pathology)
	})

	t.Run("a cancelled dialog changes nothing", func(t *testing.T) {
		m := newTestMonitor(t)
		m.pickerOpen = true
		m.pickerCh <- pickerResult{}
		m.drainPicker()

		assert.False(t, m.pickerOpen)
		assert.NoError(t, m.lastErr)
		assert.Equal(t, pathology.Normal, m.cfg.Pathology)
	})

	t.Run("no pending result is a no-op", func(t *testing.T) {
		m := newTestMonitor(t)
		m.drainPicker()
		assert.Equal(t, pathology.Normal, m.cfg.Pathology)
	})
}

func TestSetGain(t *testing.T) {
	m := newTestMonitor(t)

	m.setGain(2.0)
	assert.Equal(t, 2.0, m.cfg.Amplitude)
	assert.InDelta(t, 1.2, m.pulse.threshold, 1e-12)

	// Non-positive gain falls back to the minimum amplitude.
	m.setGain(-1)
	assert.Equal(t, config.FallbackAmplitude, m.cfg.Amplitude)
	assert.InDelta(t, 0.6*config.FallbackAmplitude, m.pulse.threshold, 1e-12)
}

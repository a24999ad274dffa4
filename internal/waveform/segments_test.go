package waveform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/ecg-monitor/internal/pathology"
)

func TestPWave(t *testing.T) {
	m := pathology.Defaults()

	t.Run("zero outside its window", func(t *testing.T) {
		for _, p := range []float64{0.14, 0.15, 0.2, 0.5, 0.99} {
			assert.Zero(t, pWave(p, m), "phase %v", p)
		}
	})

	t.Run("half-sine inside the window", func(t *testing.T) {
		want := 0.15 * math.Sin(math.Pi*0.05/0.14)
		assert.InDelta(t, want, pWave(0.05, m), 1e-12)
	})

	t.Run("suppressed when absent", func(t *testing.T) {
		m := pathology.Defaults()
		m.PWavePresent = false
		assert.Zero(t, pWave(0.05, m))

		m = pathology.Defaults()
		m.PWaveAmplitude = 0
		assert.Zero(t, pWave(0.05, m))
	})

	t.Run("width stretches the window but never reaches the QRS", func(t *testing.T) {
		m := pathology.Defaults()
		m.PWaveWidth = 1.6
		assert.NotZero(t, pWave(0.18, m)) // 0.14*1.6 = 0.224, capped at 0.20
		assert.Zero(t, pWave(0.21, m))
	})
}

func TestDeltaWave(t *testing.T) {
	t.Run("flat PR segment without pre-excitation", func(t *testing.T) {
		m := pathology.Defaults()
		for _, p := range []float64{0.14, 0.16, 0.19} {
			assert.Zero(t, deltaWave(p, m, 0))
		}
	})

	t.Run("slurred upstroke across the PR window", func(t *testing.T) {
		m := pathology.Defaults()
		m.DeltaWave = true
		m.PRInterval = 0.6
		// PR window is [0.14, 0.176); its midpoint peaks at 0.05.
		assert.InDelta(t, 0.05, deltaWave(0.158, m, 0), 1e-3)
		assert.Zero(t, deltaWave(0.18, m, 0))
	})
}

func TestEffectivePR(t *testing.T) {
	m := pathology.Defaults()
	m.PRInterval = 1.2
	m.PRIntervalVariation = 0.6

	// Wenckebach: PR stretches across beats 0..2 of each 4-beat cycle.
	assert.InDelta(t, 1.2, effectivePR(m, 0), 1e-12)
	assert.InDelta(t, 1.4, effectivePR(m, 1), 1e-12)
	assert.InDelta(t, 1.6, effectivePR(m, 2), 1e-12)
	assert.InDelta(t, 1.2, effectivePR(m, 4), 1e-12)

	m.PRIntervalVariation = 0
	assert.InDelta(t, 1.2, effectivePR(m, 1), 1e-12)
}

func TestQRS(t *testing.T) {
	m := pathology.Defaults()

	t.Run("zero outside its window", func(t *testing.T) {
		for _, p := range []float64{0.0, 0.19, 0.28, 0.5} {
			assert.Zero(t, qrs(p, m, 0), "phase %v", p)
		}
	})

	t.Run("normal morphology follows the documented polyline", func(t *testing.T) {
		// u = 0.375 lies on the R downstroke between (0.31, 1.0) and
		// (0.50, -0.25).
		u := 0.375
		want := (1.0 + (-0.25-1.0)*(u-0.31)/(0.50-0.31)) * beatJitter(7)
		assert.InDelta(t, want, qrs(0.20+u*0.08, m, 7), 1e-9)
	})

	t.Run("width scales the window", func(t *testing.T) {
		m := pathology.Defaults()
		m.QRSWidth = 1.8
		assert.NotZero(t, qrs(0.30, m, 0)) // window extends to 0.344
		assert.Zero(t, qrs(0.35, m, 0))
	})

	t.Run("each morphology peaks where its shape says", func(t *testing.T) {
		for morph, peakU := range map[pathology.QRSMorphology]float64{
			pathology.QRSNormal:        0.31,
			pathology.QRSLBBB:          0.40,
			pathology.QRSRBBB:          0.20,
			pathology.QRSPathologicalQ: 0.50,
		} {
			m := pathology.Defaults()
			m.QRSMorphology = morph
			v := qrs(0.20+peakU*0.08, m, 0)
			assert.Greater(t, v, 0.5, "morphology %s", morph)
		}
	})

	t.Run("amplitude jitter is the exact seeded factor", func(t *testing.T) {
		// (0*9301+49297) mod 200 = 97 -> (97-100)/100*0.03 = -0.0009
		assert.InDelta(t, 0.9991, beatJitter(0), 1e-12)
		assert.Equal(t, beatJitter(5), beatJitter(5))
	})
}

func TestSTSegment(t *testing.T) {
	m := pathology.Defaults()
	m.STSegmentElevation = 0.3

	t.Run("constant offset across its window", func(t *testing.T) {
		for _, p := range []float64{0.28, 0.33, 0.399} {
			assert.InDelta(t, 0.3, stSegment(p, m), 1e-12)
		}
		assert.Zero(t, stSegment(0.27, m))
		assert.Zero(t, stSegment(0.41, m))
	})

	t.Run("absent segment contributes nothing", func(t *testing.T) {
		m := pathology.Defaults()
		m.STSegmentElevation = 0.3
		m.STSegmentPresent = false
		assert.Zero(t, stSegment(0.33, m))
	})

	t.Run("duration scales the window", func(t *testing.T) {
		m := pathology.Defaults()
		m.STSegmentElevation = 0.2
		m.STSegmentDuration = 0.5
		assert.NotZero(t, stSegment(0.32, m))
		assert.Zero(t, stSegment(0.35, m)) // window ends at 0.34
	})
}

func TestTWave(t *testing.T) {
	t.Run("half-sine after the ST window", func(t *testing.T) {
		m := pathology.Defaults()
		// Window [0.40, 0.60); midpoint peaks at 0.25.
		assert.InDelta(t, 0.25, tWave(0.50, m), 1e-9)
		assert.Zero(t, tWave(0.39, m))
		// The window end lands a float ulp past 0.60.
		assert.InDelta(t, 0.0, tWave(0.60, m), 1e-12)
		assert.Zero(t, tWave(0.61, m))
	})

	t.Run("tented and inverted variants", func(t *testing.T) {
		m := pathology.Defaults()
		m.TWaveTented = true
		assert.InDelta(t, 0.4, tWave(0.50, m), 1e-9)

		m = pathology.Defaults()
		m.TWaveInverted = true
		assert.InDelta(t, -0.25, tWave(0.50, m), 1e-9)
	})

	t.Run("QT interval stretches the width", func(t *testing.T) {
		m := pathology.Defaults()
		m.QTInterval = 1.5
		// Window now [0.40, 0.70).
		assert.NotZero(t, tWave(0.65, m))
		assert.Zero(t, tWave(0.71, m))

		m.QTInterval = 1.0
		assert.Zero(t, tWave(0.65, m))
	})
}

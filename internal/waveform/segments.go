package waveform

import (
	"math"

	"github.com/iburimskiy/ecg-monitor/internal/pathology"
)

// Cardiac cycle geometry on the normalized phase axis. QRS always starts at
// 0.20 regardless of the PR interval; ST and T float behind the QRS end.
const (
	pWindowEnd   = 0.14
	prStart      = 0.14
	prBaseWidth  = 0.06
	qrsStart     = 0.20
	qrsBaseWidth = 0.08
	stBaseWidth  = 0.12
	tBaseWidth   = 0.20
)

const (
	pWavePeak     = 0.15
	deltaWavePeak = 0.05
	tWavePeak     = 0.25
	tWaveTentPeak = 0.4
)

// pWave is a half-sine bump at the start of the cycle. PWaveWidth stretches
// the window, capped so a wide P never runs into the QRS.
func pWave(p float64, m pathology.Modifiers) float64 {
	if !m.PWavePresent || m.PWaveAmplitude == 0 {
		return 0
	}
	w := pWindowEnd * m.PWaveWidth
	if w > qrsStart {
		w = qrsStart
	}
	if p < 0 || p >= w {
		return 0
	}
	return pWavePeak * m.PWaveAmplitude * math.Sin(math.Pi*p/w)
}

// effectivePR applies Wenckebach-style progressive lengthening: across a
// fixed 4-beat cycle, beats 0..2 lengthen by variation·pos/3. Beat 3 is the
// dropped one, handled by the dropped-beat check upstream.
func effectivePR(m pathology.Modifiers, beat int64) float64 {
	pr := m.PRInterval
	if m.PRIntervalVariation > 0 {
		pos := beat % 4
		if pos < 0 {
			pos += 4
		}
		if pos < 3 {
			pr += m.PRIntervalVariation * float64(pos) / 3
		}
	}
	return pr
}

// deltaWave is the WPW pre-excitation upstroke across the PR window. For
// everything else the PR segment is flat zero.
func deltaWave(p float64, m pathology.Modifiers, beat int64) float64 {
	if !m.DeltaWave {
		return 0
	}
	prEnd := prStart + prBaseWidth*effectivePR(m, beat)
	if p < prStart || p >= prEnd {
		return 0
	}
	u := (p - prStart) / (prEnd - prStart)
	return deltaWavePeak * math.Sin(math.Pi*u)
}

// A QRS shape is a polyline over the normalized window [0,1] at unit
// amplitude; interp evaluates it.
type shapePoint struct {
	u, v float64
}

var qrsShapes = map[pathology.QRSMorphology][]shapePoint{
	// Q dip, R upstroke/downstroke, S dip, return.
	pathology.QRSNormal: {
		{0, 0}, {0.12, -0.10}, {0.31, 1.0}, {0.50, -0.25}, {0.75, -0.05}, {1, 0},
	},
	// M shape: small initial negative, tall first R, S dip, shorter second R.
	pathology.QRSLBBB: {
		{0, 0}, {0.15, -0.15}, {0.40, 0.9}, {0.55, 0.3}, {0.80, 0.7}, {1, 0},
	},
	// R-S-R' pattern.
	pathology.QRSRBBB: {
		{0, 0}, {0.20, 0.8}, {0.45, -0.3}, {0.70, 0.6}, {1, 0},
	},
	// Deep wide Q, then R, S, return.
	pathology.QRSPathologicalQ: {
		{0, 0}, {0.25, -0.45}, {0.50, 0.9}, {0.75, -0.15}, {1, 0},
	},
}

func interp(points []shapePoint, u float64) float64 {
	for i := 1; i < len(points); i++ {
		if u <= points[i].u {
			a, b := points[i-1], points[i]
			if b.u == a.u {
				return b.v
			}
			return a.v + (b.v-a.v)*(u-a.u)/(b.u-a.u)
		}
	}
	return 0
}

// qrs evaluates the QRS complex: a morphology polyline scaled by amplitude
// and the deterministic per-beat jitter.
func qrs(p float64, m pathology.Modifiers, beat int64) float64 {
	w := qrsBaseWidth * m.QRSWidth
	if p < qrsStart || p >= qrsStart+w {
		return 0
	}
	shape, ok := qrsShapes[m.QRSMorphology]
	if !ok {
		shape = qrsShapes[pathology.QRSNormal]
	}
	u := (p - qrsStart) / w
	return interp(shape, u) * m.QRSAmplitude * beatJitter(beat)
}

func qrsEnd(m pathology.Modifiers) float64 {
	return qrsStart + qrsBaseWidth*m.QRSWidth
}

// stSegment is a constant offset directly after the QRS. The window is part
// of cycle timing even when the segment contributes nothing.
func stSegment(p float64, m pathology.Modifiers) float64 {
	if !m.STSegmentPresent || m.STSegmentElevation == 0 {
		return 0
	}
	start := qrsEnd(m)
	w := stBaseWidth * m.STSegmentDuration
	if p < start || p >= start+w {
		return 0
	}
	return m.STSegmentElevation
}

func stEnd(m pathology.Modifiers) float64 {
	return qrsEnd(m) + stBaseWidth*m.STSegmentDuration
}

// tWave is a half-sine after the ST window. QTInterval scales the width
// (QT prolongation or shortening); TWaveTented raises the peak.
func tWave(p float64, m pathology.Modifiers) float64 {
	start := stEnd(m)
	w := tBaseWidth * m.TWaveWidth * m.QTInterval
	if w <= 0 || p < start || p >= start+w {
		return 0
	}
	peak := tWavePeak
	if m.TWaveTented {
		peak = tWaveTentPeak
	}
	u := (p - start) / w
	v := peak * m.TWaveAmplitude * math.Sin(math.Pi*u)
	if m.TWaveInverted {
		v = -v
	}
	return v
}

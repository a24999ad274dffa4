package waveform

import (
	"math"

	"github.com/iburimskiy/ecg-monitor/internal/pathology"
)

// Config describes one synthesis request. The caller owns it and is
// responsible for the boundary clamping rules (heart rate in [30,300],
// positive amplitude, non-negative noise, known pathology); see
// internal/config. The synthesizer never rejects a Config.
type Config struct {
	Pathology  pathology.ID
	HeartRate  float64
	Amplitude  float64
	Noise      float64
	SampleRate float64
}

// Synthesizer produces Lead II samples. It is stateless apart from the
// resolver's fill-once modifier cache and is safe for concurrent use.
type Synthesizer struct {
	resolver *pathology.Resolver
}

func NewSynthesizer(r *pathology.Resolver) *Synthesizer {
	if r == nil {
		r = pathology.NewResolver()
	}
	return &Synthesizer{resolver: r}
}

// Resolver exposes the modifier resolver (secondary entry point).
func (s *Synthesizer) Resolver() *pathology.Resolver {
	return s.resolver
}

// Sample computes the instantaneous trace value for a position within the
// cardiac cycle. Only phase mod 1 is meaningful; beat is the ordinal cycle
// counter and seeds every per-beat decision. Total over its domain: no
// error paths for well-formed configs.
func (s *Synthesizer) Sample(phase float64, cfg Config, beat int64) float64 {
	p := normalizePhase(phase)
	resolved := s.resolver.Resolve(cfg.Pathology)

	show := Decide(beat, resolved)
	m := effectiveModifiers(cfg.Pathology, resolved, show, beat)

	// Dropped beat: atria fire, the ventricles never answer.
	if m.DroppedBeats > 0 {
		cycle := int64(math.Round(1 / m.DroppedBeats))
		if cycle > 1 && mod64(beat, cycle) == cycle-1 {
			v := pWave(p, m) + deltaWave(p, m, beat)
			v += noiseTerm(p, cfg, m)
			return v * cfg.Amplitude
		}
	}

	// AV dissociation: P waves march at the atrial rate while the
	// ventricular complex runs on its own clock.
	if m.AVDissociation {
		return s.dissociatedSample(p, cfg, m, beat)
	}

	// Premature beats squeeze the whole complex into a shorter cycle.
	sp := p
	switch {
	case cfg.Pathology == pathology.AtrialPrematureBeat && show:
		sp = p / 0.7
	case cfg.Pathology == pathology.VentricularPrematureBeat && show:
		sp = p / 0.6
		m.PWavePresent = false
	}

	v := pWave(sp, m) + deltaWave(sp, m, beat) + qrs(sp, m, beat) +
		stSegment(sp, m) + tWave(sp, m)

	switch cfg.Pathology {
	case pathology.AtrialFlutter:
		// Flutter waves replace everything ahead of the QRS.
		if p < qrsStart {
			v = flutterWave(p) + qrs(p, m, beat) + stSegment(p, m) + tWave(p, m)
		}
	case pathology.VentricularFibrillation:
		// No organized complexes at all.
		v = (phaseHash01(p) - 0.5) * 1.2
	}

	v += noiseTerm(p, cfg, m)
	return v * cfg.Amplitude
}

// dissociatedSample renders the atrial and ventricular contributions at
// independent phases derived from the same absolute position in time.
func (s *Synthesizer) dissociatedSample(p float64, cfg Config, m pathology.Modifiers, beat int64) float64 {
	vr := m.VentricularRate
	if vr <= 0 {
		vr = cfg.HeartRate * 0.4
	}
	ratio := 1.0
	if cfg.HeartRate > 0 {
		ratio = vr / cfg.HeartRate
	}

	// Absolute time in atrial cycles, re-projected onto the ventricular rate.
	abs := (float64(beat) + p) * ratio
	vBeat := int64(math.Floor(abs))
	vPhase := abs - math.Floor(abs)

	v := pWave(p, m) +
		deltaWave(vPhase, m, vBeat) + qrs(vPhase, m, vBeat) +
		stSegment(vPhase, m) + tWave(vPhase, m)
	v += noiseTerm(p, cfg, m)
	return v * cfg.Amplitude
}

// flutterWave draws three triangular flutter waves across the pre-QRS
// portion of the cycle, peak 0.2.
func flutterWave(p float64) float64 {
	u := p / qrsStart * 3
	f := u - math.Floor(u)
	return 0.2 * (1 - math.Abs(2*f-1))
}

func noiseTerm(p float64, cfg Config, m pathology.Modifiers) float64 {
	total := cfg.Noise + m.BaselineNoise
	if total <= 0 {
		return 0
	}
	return (phaseHash01(p) - 0.5) * total
}

// Decide reports whether the pathological morphology shows on this beat,
// per the intermittency policy.
func Decide(beat int64, m pathology.Modifiers) bool {
	f := m.AbnormalityFrequency
	if f >= 1 {
		return true
	}
	if f <= 0 {
		return false
	}
	cycle := int64(m.AbnormalityCycleLength)
	if cycle <= 0 {
		cycle = 4
	}
	switch m.AbnormalityPattern {
	case pathology.PatternPeriodic:
		return mod64(beat, cycle) == cycle-1
	case pathology.PatternClustered:
		return mod64(beat, cycle) < (cycle+1)/2
	default:
		return beatHash01(beat) < f
	}
}

// effectiveModifiers derives the per-beat parameter set for beats where the
// abnormality stays hidden. The rules are keyed by pathology so the
// conditionals live in one place.
func effectiveModifiers(id pathology.ID, m pathology.Modifiers, show bool, beat int64) pathology.Modifiers {
	if show || id == pathology.Normal {
		return m
	}
	if override, ok := lapseOverrides[id]; ok {
		return override(m, beat)
	}
	// Generic rule: a hidden beat keeps its ST deviation with a small
	// seeded wobble instead of snapping flat.
	if m.STSegmentElevation != 0 {
		jitter := (seeded01(beat*5301+19347) - 0.5) * 0.05
		m.STSegmentElevation *= 1 + jitter
	}
	return m
}

// lapseOverrides maps pathologies to the shape a "hidden" beat takes.
var lapseOverrides = map[pathology.ID]func(pathology.Modifiers, int64) pathology.Modifiers{
	pathology.WolffParkinsonWhite: func(m pathology.Modifiers, _ int64) pathology.Modifiers {
		m.DeltaWave = false
		m.PRInterval = 1.0
		m.QRSWidth = 1.0
		m.QRSMorphology = pathology.QRSNormal
		return m
	},
	pathology.STElevationMI:        retainSTDeviation,
	pathology.STDepressionIschemia: retainSTDeviation,
	pathology.PathologicalQWaves: func(m pathology.Modifiers, _ int64) pathology.Modifiers {
		m.QRSMorphology = pathology.QRSNormal
		return m
	},
	pathology.LeftBundleBranchBlock:  normalizeConduction,
	pathology.RightBundleBranchBlock: normalizeConduction,
	// Premature-beat pathologies are handled by phase compression, not by
	// modifier changes.
	pathology.AtrialPrematureBeat:      keepModifiers,
	pathology.VentricularPrematureBeat: keepModifiers,
}

// retainSTDeviation keeps 30% of the ST deviation with a ±10% beat-seeded
// wobble, so ischemic traces never look perfectly healthy between events.
func retainSTDeviation(m pathology.Modifiers, beat int64) pathology.Modifiers {
	jitter := (seeded01(beat*7301+29347) - 0.5) * 0.2
	m.STSegmentElevation = m.STSegmentElevation * 0.3 * (1 + jitter)
	return m
}

func normalizeConduction(m pathology.Modifiers, _ int64) pathology.Modifiers {
	m.QRSWidth = 1.0
	m.QRSMorphology = pathology.QRSNormal
	m.TWaveInverted = false
	return m
}

func keepModifiers(m pathology.Modifiers, _ int64) pathology.Modifiers {
	return m
}

func normalizePhase(phase float64) float64 {
	p := math.Mod(phase, 1)
	if p < 0 {
		p += 1
	}
	return p
}

func mod64(a, n int64) int64 {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

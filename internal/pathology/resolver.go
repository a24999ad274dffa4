package pathology

import "sync"

// Resolver maps a pathology ID to its morphology parameters. Resolution is
// memoized: the first call for an ID computes and caches, later calls return
// the identical value. Unknown IDs silently resolve to Normal.
type Resolver struct {
	mu    sync.RWMutex
	cache map[ID]Modifiers
}

func NewResolver() *Resolver {
	return &Resolver{cache: make(map[ID]Modifiers)}
}

// Resolve is total over ID and never fails. Safe for concurrent use; a lost
// race recomputes the same value, which is harmless.
func (r *Resolver) Resolve(id ID) Modifiers {
	r.mu.RLock()
	m, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return m
	}

	m = buildModifiers(id)

	r.mu.Lock()
	if cached, ok := r.cache[id]; ok {
		m = cached
	} else {
		r.cache[id] = m
	}
	r.mu.Unlock()
	return m
}

// buildModifiers holds the per-pathology morphology table. Values the table
// does not touch keep their Defaults.
func buildModifiers(id ID) Modifiers {
	m := Defaults()

	switch id {
	case SinusArrhythmia:
		m.Irregularity = 0.15

	case AtrialFibrillation:
		m.PWavePresent = false
		m.BaselineNoise = 0.05
		m.Irregularity = 0.3

	case AtrialFlutter:
		// P waves replaced by flutter waves in the synthesizer.
		m.PWavePresent = false

	case SupraventricularTachycardia:
		m.PWaveAmplitude = 0.3

	case AtrialPrematureBeat:
		m.AbnormalityFrequency = 0.2
		m.AbnormalityCycleLength = 5

	case VentricularPrematureBeat:
		m.AbnormalityFrequency = 0.15
		m.AbnormalityCycleLength = 6
		m.QRSWidth = 1.8
		m.QRSAmplitude = 1.4
		m.TWaveInverted = true

	case VentricularTachycardia:
		m.PWavePresent = false
		m.QRSWidth = 1.8
		m.QRSAmplitude = 1.3
		m.TWaveInverted = true

	case VentricularFibrillation:
		// Whole-cycle chaos; segment parameters are irrelevant but the P
		// wave is formally absent.
		m.PWavePresent = false

	case FirstDegreeBlock:
		m.PRInterval = 1.8

	case Wenckebach:
		m.PRInterval = 1.2
		m.PRIntervalVariation = 0.6
		m.DroppedBeats = 0.25

	case MobitzII:
		m.DroppedBeats = 1.0 / 3.0

	case ThirdDegreeBlock:
		m.AVDissociation = true
		m.VentricularRate = 38

	case LeftBundleBranchBlock:
		m.QRSWidth = 1.8
		m.QRSMorphology = QRSLBBB
		m.TWaveInverted = true

	case RightBundleBranchBlock:
		m.QRSWidth = 1.6
		m.QRSMorphology = QRSRBBB

	case WolffParkinsonWhite:
		m.DeltaWave = true
		m.PRInterval = 0.6
		m.QRSWidth = 1.3
		m.AbnormalityFrequency = 0.22

	case LongQT:
		m.QTInterval = 1.5

	case STElevationMI:
		m.STSegmentElevation = 0.3
		m.TWaveAmplitude = 1.2
		m.AbnormalityFrequency = 0.9
		m.AbnormalityPattern = PatternClustered
		m.AbnormalityCycleLength = 6

	case STDepressionIschemia:
		m.STSegmentElevation = -0.2
		m.TWaveInverted = true
		m.AbnormalityFrequency = 0.9

	case PathologicalQWaves:
		m.QRSMorphology = QRSPathologicalQ
		m.AbnormalityFrequency = 0.8

	case Hyperkalemia:
		m.PWaveAmplitude = 0.5
		m.TWaveTented = true
		m.TWaveAmplitude = 1.6
		m.QRSWidth = 1.2

	case Hypokalemia:
		m.TWaveAmplitude = 0.4
		m.STSegmentElevation = -0.1
		m.QTInterval = 1.3

	case LeftVentricularHypertrophy:
		m.QRSAmplitude = 1.8
		m.STSegmentElevation = -0.15
		m.TWaveInverted = true

	case RightVentricularHypertrophy:
		m.QRSAmplitude = 1.25
		m.TWaveInverted = true

	case LeftAtrialHypertrophy:
		m.PWaveWidth = 1.6
		m.PWaveAmplitude = 1.2

	case RightAtrialHypertrophy:
		m.PWaveAmplitude = 1.8

	default:
		// Normal, the pure-rate sinus variants, and anything unrecognized.
	}

	return m
}

package pathology

// ID identifies a simulated rhythm or conduction abnormality. The set is
// closed; anything else resolves to Normal.
type ID string

const (
	Normal                      ID = "normal"
	SinusTachycardia            ID = "sinus-tachycardia"
	SinusBradycardia            ID = "sinus-bradycardia"
	SinusArrhythmia             ID = "sinus-arrhythmia"
	AtrialFibrillation          ID = "atrial-fibrillation"
	AtrialFlutter               ID = "atrial-flutter"
	SupraventricularTachycardia ID = "supraventricular-tachycardia"
	AtrialPrematureBeat         ID = "atrial-premature-beat"
	VentricularPrematureBeat    ID = "ventricular-premature-beat"
	VentricularTachycardia      ID = "ventricular-tachycardia"
	VentricularFibrillation     ID = "ventricular-fibrillation"
	FirstDegreeBlock            ID = "first-degree-block"
	Wenckebach                  ID = "wenckebach"
	MobitzII                    ID = "mobitz-ii"
	ThirdDegreeBlock            ID = "third-degree-block"
	LeftBundleBranchBlock       ID = "left-bundle-branch-block"
	RightBundleBranchBlock      ID = "right-bundle-branch-block"
	WolffParkinsonWhite         ID = "wolff-parkinson-white"
	LongQT                      ID = "long-qt"
	STElevationMI               ID = "st-elevation-mi"
	STDepressionIschemia        ID = "st-depression-ischemia"
	PathologicalQWaves          ID = "pathological-q-waves"
	Hyperkalemia                ID = "hyperkalemia"
	Hypokalemia                 ID = "hypokalemia"
	LeftVentricularHypertrophy  ID = "left-ventricular-hypertrophy"
	RightVentricularHypertrophy ID = "right-ventricular-hypertrophy"
	LeftAtrialHypertrophy       ID = "left-atrial-hypertrophy"
	RightAtrialHypertrophy      ID = "right-atrial-hypertrophy"
)

// QRSMorphology selects the shape of the QRS complex.
type QRSMorphology string

const (
	QRSNormal        QRSMorphology = "normal"
	QRSLBBB          QRSMorphology = "lbbb"
	QRSRBBB          QRSMorphology = "rbbb"
	QRSPathologicalQ QRSMorphology = "pathological-q"
)

// Pattern controls how intermittent abnormalities distribute over beats.
type Pattern string

const (
	PatternRandom    Pattern = "random"
	PatternPeriodic  Pattern = "periodic"
	PatternClustered Pattern = "clustered"
)

// Modifiers is the full morphology parameter set for one pathology. A zero
// value is NOT usable; start from Defaults and adjust.
type Modifiers struct {
	PWaveAmplitude float64
	PWaveWidth     float64
	PWavePresent   bool

	PRInterval          float64
	PRIntervalVariation float64

	QRSWidth      float64
	QRSAmplitude  float64
	QRSMorphology QRSMorphology

	STSegmentPresent   bool
	STSegmentElevation float64
	STSegmentDuration  float64

	TWaveAmplitude float64
	TWaveWidth     float64
	TWaveTented    bool
	TWaveInverted  bool

	QTInterval float64

	BaselineNoise float64

	// Irregularity is carried for display purposes; the synthesizer does
	// not read it directly.
	Irregularity float64

	// DroppedBeats is the fraction of beats whose QRS is omitted
	// (0 = none, 0.25 = every 4th).
	DroppedBeats float64

	AVDissociation  bool
	VentricularRate float64

	DeltaWave bool

	AbnormalityFrequency   float64
	AbnormalityPattern     Pattern
	AbnormalityCycleLength int
}

// Defaults returns the normal-sinus parameter set every pathology starts from.
func Defaults() Modifiers {
	return Modifiers{
		PWaveAmplitude:         1.0,
		PWaveWidth:             1.0,
		PWavePresent:           true,
		PRInterval:             1.0,
		QRSWidth:               1.0,
		QRSAmplitude:           1.0,
		QRSMorphology:          QRSNormal,
		STSegmentPresent:       true,
		STSegmentDuration:      1.0,
		TWaveAmplitude:         1.0,
		TWaveWidth:             1.0,
		QTInterval:             1.0,
		AbnormalityFrequency:   1.0,
		AbnormalityPattern:     PatternRandom,
		AbnormalityCycleLength: 4,
	}
}

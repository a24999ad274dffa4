package game

// pulseDetector finds R waves by rising threshold crossing with a
// refractory window, counted in samples rather than wall-clock time so the
// detected rate stays a pure function of the trace.
type pulseDetector struct {
	threshold   float64
	refractory  int // samples
	sampleRate  float64
	sinceLast   int
	havePeak    bool
	lastValue   float64
	initialized bool
	bpm         int
}

func newPulseDetector(threshold, sampleRate float64) *pulseDetector {
	return &pulseDetector{
		threshold:  threshold,
		sampleRate: sampleRate,
		refractory: int(sampleRate * 0.2),
	}
}

// Process consumes one sample and reports whether it completed a new beat.
func (d *pulseDetector) Process(value float64) bool {
	if !d.initialized {
		d.initialized = true
		d.lastValue = value
		return false
	}
	d.sinceLast++

	crossed := d.lastValue < d.threshold && value >= d.threshold
	d.lastValue = value

	if !crossed || d.sinceLast < d.refractory {
		return false
	}

	if d.havePeak {
		rr := float64(d.sinceLast) / d.sampleRate
		if rr > 0 {
			d.bpm = int(60.0 / rr)
		}
	}
	d.havePeak = true
	d.sinceLast = 0
	return true
}

// SetThreshold retargets detection, e.g. after a gain change.
func (d *pulseDetector) SetThreshold(v float64) {
	d.threshold = v
}

// BPM returns the last measured rate, 0 until two beats have been seen.
func (d *pulseDetector) BPM() int {
	return d.bpm
}

// Reset clears detector state, e.g. when the pathology or rate changes.
func (d *pulseDetector) Reset() {
	d.sinceLast = 0
	d.havePeak = false
	d.initialized = false
	d.bpm = 0
}

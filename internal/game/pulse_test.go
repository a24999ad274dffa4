package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// feedBeats pushes a flat trace with a spike every period samples.
func feedBeats(d *pulseDetector, period, total int) int {
	beats := 0
	for i := 0; i < total; i++ {
		v := 0.0
		if i > 0 && i%period == 0 {
			v = 1.0
		}
		if d.Process(v) {
			beats++
		}
	}
	return beats
}

func TestPulseDetector(t *testing.T) {
	t.Run("measures the rate from the RR interval", func(t *testing.T) {
		// 180 samples/s, spike every 150 samples -> 72 bpm.
		d := newPulseDetector(0.6, 180)
		beats := feedBeats(d, 150, 1000)
		assert.Equal(t, 6, beats)
		assert.Equal(t, 72, d.BPM())
	})

	t.Run("refractory window ignores double-counting", func(t *testing.T) {
		d := newPulseDetector(0.6, 180) // refractory = 36 samples
		count := 0
		for i := 0; i < 400; i++ {
			// Two crossings 5 samples apart, once per 200 samples.
			v := 0.0
			if i%200 == 100 || i%200 == 105 {
				v = 1.0
			}
			if d.Process(v) {
				count++
			}
		}
		assert.Equal(t, 2, count)
	})

	t.Run("no rate until the second beat", func(t *testing.T) {
		d := newPulseDetector(0.6, 180)
		for i := 0; i < 160; i++ {
			v := 0.0
			if i == 150 {
				v = 1.0
			}
			d.Process(v)
		}
		assert.Zero(t, d.BPM())
	})

	t.Run("reset forgets history", func(t *testing.T) {
		d := newPulseDetector(0.6, 180)
		feedBeats(d, 150, 1000)
		d.Reset()
		assert.Zero(t, d.BPM())
	})
}

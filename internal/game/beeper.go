package game

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	beepSampleRate = beep.SampleRate(44100)
	blipFrequency  = 880.0
	blipDuration   = 70 * time.Millisecond
)

// blipStreamer is an endless beep.Streamer that stays silent until
// triggered, then emits one short decaying sine burst per trigger, the QRS
// blip of a bedside monitor. Stream runs on the speaker goroutine, Trigger
// on the game loop, hence the mutex.
type blipStreamer struct {
	mu        sync.Mutex
	remaining int
	total     int
	phase     float64
}

func newBlipStreamer() *blipStreamer {
	return &blipStreamer{total: beepSampleRate.N(blipDuration)}
}

// Trigger starts a blip. A trigger during a playing blip restarts it.
func (b *blipStreamer) Trigger() {
	b.mu.Lock()
	b.remaining = b.total
	b.phase = 0
	b.mu.Unlock()
}

func (b *blipStreamer) Stream(samples [][2]float64) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	step := blipFrequency / float64(beepSampleRate)
	for i := range samples {
		var v float64
		if b.remaining > 0 {
			decay := float64(b.remaining) / float64(b.total)
			v = 0.4 * decay * math.Sin(2*math.Pi*b.phase)
			b.phase += step
			b.remaining--
		}
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (b *blipStreamer) Err() error { return nil }

var speakerOnce sync.Once

// startBeeper initializes the speaker once and plugs in the blip streamer.
func startBeeper() (*blipStreamer, error) {
	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(beepSampleRate, beepSampleRate.N(time.Second/20))
	})
	if initErr != nil {
		return nil, initErr
	}
	b := newBlipStreamer()
	speaker.Play(b)
	return b, nil
}

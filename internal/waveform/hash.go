package waveform

import "math"

// The 9301/49297/233280 linear hash family. It is deliberately cheap and
// deterministic so every "random" decision replays identically for the same
// beat index or phase. Do not swap it for a real PRNG; beat-level behavior
// and the regression tests depend on the exact values.
const (
	hashMul = 9301
	hashInc = 49297
	hashMod = 233280
)

// seeded01 maps an integer seed to [0,1) via the shared modulus.
func seeded01(seed int64) float64 {
	h := seed % hashMod
	if h < 0 {
		h += hashMod
	}
	return float64(h) / hashMod
}

// beatHash01 is the canonical per-beat hash.
func beatHash01(beat int64) float64 {
	return seeded01(beat*hashMul + hashInc)
}

// phaseHash01 seeds the hash from the normalized phase, quantized to 1e-4.
// Noise derived from it repeats every cycle at the same phase.
func phaseHash01(p float64) float64 {
	return seeded01(int64(math.Floor(p*10000))*hashMul + hashInc)
}

// beatJitter is the ±3% per-beat QRS amplitude factor.
func beatJitter(beat int64) float64 {
	h := (beat*hashMul + hashInc) % 200
	if h < 0 {
		h += 200
	}
	return 1 + float64(h-100)/100*0.03
}

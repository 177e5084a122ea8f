package audiograph

import "math"

// AudioBuffer holds interleaved, channel-major float32 audio samples for a
// fixed number of channels at a fixed sample rate. samples[i*channels+c] is
// channel c of frame i.
type AudioBuffer struct {
	Channels   int
	SampleRate uint32
	Samples    []float32
}

// NewAudioBuffer allocates a zeroed buffer for the given channel count,
// sample rate, and frame count.
func NewAudioBuffer(channels int, sampleRate uint32, numFrames int) AudioBuffer {
	n := 0
	if channels > 0 && numFrames > 0 {
		n = channels * numFrames
	}
	return AudioBuffer{
		Channels:   channels,
		SampleRate: sampleRate,
		Samples:    make([]float32, n),
	}
}

// Silence is an alias for NewAudioBuffer: it returns a buffer of the
// requested shape filled with zeros.
func Silence(channels int, sampleRate uint32, numFrames int) AudioBuffer {
	return NewAudioBuffer(channels, sampleRate, numFrames)
}

// NumFrames returns the number of sample frames held by the buffer. A buffer
// with zero channels has zero frames regardless of len(Samples).
func (b *AudioBuffer) NumFrames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Clear zeros every sample in place.
func (b *AudioBuffer) Clear() {
	for i := range b.Samples {
		b.Samples[i] = 0
	}
}

// Mix adds other's samples into b in place, sample-for-sample, up to the
// shorter of the two sample slices. Mix never averages or normalizes: a
// node with two identical incoming connections must receive double the
// amplitude of either alone.
func (b *AudioBuffer) Mix(other AudioBuffer) {
	n := len(b.Samples)
	if len(other.Samples) < n {
		n = len(other.Samples)
	}
	for i := 0; i < n; i++ {
		b.Samples[i] += other.Samples[i]
	}
}

// ApplyGain scales every sample by gain in place.
func (b *AudioBuffer) ApplyGain(gain float32) {
	for i := range b.Samples {
		b.Samples[i] *= gain
	}
}

// PeakLevel returns the maximum absolute sample value, or 0 for an empty
// buffer.
func (b *AudioBuffer) PeakLevel() float32 {
	var peak float32
	for _, s := range b.Samples {
		a := s
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	return peak
}

// RMSLevel returns the root-mean-square of every sample, or 0 for an empty
// buffer.
func (b *AudioBuffer) RMSLevel() float32 {
	if len(b.Samples) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range b.Samples {
		sumSq += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sumSq / float64(len(b.Samples))))
}

// Resize changes the buffer's frame count, preserving existing samples and
// zero-filling any newly added tail.
func (b *AudioBuffer) Resize(numFrames int) {
	want := 0
	if b.Channels > 0 && numFrames > 0 {
		want = b.Channels * numFrames
	}
	if want == len(b.Samples) {
		return
	}
	next := make([]float32, want)
	copy(next, b.Samples)
	b.Samples = next
}

// Clone returns an independent copy of b.
func (b AudioBuffer) Clone() AudioBuffer {
	out := AudioBuffer{Channels: b.Channels, SampleRate: b.SampleRate}
	out.Samples = make([]float32, len(b.Samples))
	copy(out.Samples, b.Samples)
	return out
}

package audiograph

import "testing"

func TestNewAudioBuffer(t *testing.T) {
	t.Parallel()

	b := NewAudioBuffer(2, 48000, 512)
	if b.Channels != 2 {
		t.Errorf("Channels = %d, want 2", b.Channels)
	}
	if b.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", b.SampleRate)
	}
	if len(b.Samples) != 1024 {
		t.Fatalf("len(Samples) = %d, want 1024", len(b.Samples))
	}
	for i, s := range b.Samples {
		if s != 0 {
			t.Fatalf("Samples[%d] = %v, want 0", i, s)
		}
	}
}

func TestAudioBufferNumFrames(t *testing.T) {
	t.Parallel()

	t.Run("normal", func(t *testing.T) {
		t.Parallel()
		b := NewAudioBuffer(2, 48000, 10)
		if got := b.NumFrames(); got != 10 {
			t.Errorf("NumFrames() = %d, want 10", got)
		}
	})

	t.Run("zero channels", func(t *testing.T) {
		t.Parallel()
		b := AudioBuffer{Channels: 0, Samples: []float32{1, 2, 3}}
		if got := b.NumFrames(); got != 0 {
			t.Errorf("NumFrames() = %d, want 0", got)
		}
	})
}

func TestAudioBufferMixSums(t *testing.T) {
	t.Parallel()

	a := AudioBuffer{Channels: 2, SampleRate: 48000, Samples: []float32{1, 1, 1, 1}}
	b := AudioBuffer{Channels: 2, SampleRate: 48000, Samples: []float32{1, 1, 1, 1}}

	a.Mix(b)
	for i, s := range a.Samples {
		if s != 2 {
			t.Errorf("Samples[%d] = %v, want 2 (sum, not average)", i, s)
		}
	}
}

func TestAudioBufferMixIgnoresExcessLength(t *testing.T) {
	t.Parallel()

	a := AudioBuffer{Channels: 1, Samples: []float32{1, 1, 1}}
	b := AudioBuffer{Channels: 1, Samples: []float32{1, 1}}

	a.Mix(b)
	want := []float32{2, 2, 1}
	for i, s := range a.Samples {
		if s != want[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, s, want[i])
		}
	}
}

func TestAudioBufferApplyGain(t *testing.T) {
	t.Parallel()

	b := AudioBuffer{Channels: 1, Samples: []float32{1, -1, 0.5}}
	b.ApplyGain(2)

	want := []float32{2, -2, 1}
	for i, s := range b.Samples {
		if s != want[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, s, want[i])
		}
	}
}

func TestAudioBufferPeakLevel(t *testing.T) {
	t.Parallel()

	t.Run("non-empty", func(t *testing.T) {
		t.Parallel()
		b := AudioBuffer{Samples: []float32{0.1, -0.9, 0.5}}
		if got := b.PeakLevel(); got != 0.9 {
			t.Errorf("PeakLevel() = %v, want 0.9", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		b := AudioBuffer{}
		if got := b.PeakLevel(); got != 0 {
			t.Errorf("PeakLevel() = %v, want 0", got)
		}
	})
}

func TestAudioBufferRMSLevel(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		b := AudioBuffer{}
		if got := b.RMSLevel(); got != 0 {
			t.Errorf("RMSLevel() = %v, want 0", got)
		}
	})

	t.Run("constant signal", func(t *testing.T) {
		t.Parallel()
		b := AudioBuffer{Samples: []float32{1, 1, 1, 1}}
		if got := b.RMSLevel(); !nearlyEqual32(got, 1, 1e-6) {
			t.Errorf("RMSLevel() = %v, want 1", got)
		}
	})
}

func TestAudioBufferResize(t *testing.T) {
	t.Parallel()

	b := AudioBuffer{Channels: 2, Samples: []float32{1, 2, 3, 4}}
	b.Resize(3)

	want := []float32{1, 2, 3, 4, 0, 0}
	if len(b.Samples) != len(want) {
		t.Fatalf("len(Samples) = %d, want %d", len(b.Samples), len(want))
	}
	for i, s := range b.Samples {
		if s != want[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, s, want[i])
		}
	}
}

func nearlyEqual32(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

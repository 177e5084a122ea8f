package compositor

import (
	"fmt"
	"testing"

	"github.com/cwbudde/audiograph/audiograph"
)

func TestEqualizerNodeDefaultFrequencies(t *testing.T) {
	t.Parallel()

	n := NewEqualizerNode("eq1", 12)
	for i, want := range []float32{60, 170, 310, 600, 1000, 3000, 6000, 12000, 14000, 16000, 1000, 1000} {
		got, ok := n.GetParameter(paramName(i, "freq"))
		if !ok || got != want {
			t.Errorf("band %d freq = (%v, %v), want %v", i, got, ok, want)
		}
	}
}

func TestEqualizerNodeFlatAtZeroGainIsIdentity(t *testing.T) {
	t.Parallel()

	n := NewEqualizerNode("eq1", 4)
	input := audiograph.AudioBuffer{Channels: 2, SampleRate: 48000, Samples: []float32{0.3, -0.2, 0.1, 0.5}}

	out, err := n.Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for i := range input.Samples {
		if out.Samples[i] != input.Samples[i] {
			t.Errorf("sample %d = %v, want unchanged %v at 0 dB", i, out.Samples[i], input.Samples[i])
		}
	}
}

func TestEqualizerNodeSetRederivesAllBands(t *testing.T) {
	t.Parallel()

	n := NewEqualizerNode("eq1", 2)
	flatA0 := n.bands[0].left.a0
	// Wipe band 1's coefficients so a rederivation of it is observable.
	n.bands[1].left = biquadDF1{}
	n.bands[1].right = biquadDF1{}
	if err := n.SetParameter(paramName(0, "gain"), 6); err != nil {
		t.Fatalf("SetParameter() error = %v", err)
	}
	if n.bands[0].left.a0 == flatA0 {
		t.Errorf("band 0 coefficients were not recomputed")
	}
	if n.bands[1].left.a0 == 0 || n.bands[1].right.a0 == 0 {
		t.Errorf("band 1 coefficients were not recomputed")
	}
}

func TestEqualizerNodeUnknownParameterName(t *testing.T) {
	t.Parallel()

	n := NewEqualizerNode("eq1", 2)
	if err := n.SetParameter("band_0_bogus", 1); err == nil {
		t.Error("SetParameter(band_0_bogus) error = nil, want error")
	}
	if err := n.SetParameter("band_99_gain", 1); err == nil {
		t.Error("SetParameter(band_99_gain) error = nil, want error (out of range band)")
	}
	if err := n.SetParameter("not_a_band_param", 1); err == nil {
		t.Error("SetParameter(not_a_band_param) error = nil, want error")
	}
}

func TestEqualizerNodeReset(t *testing.T) {
	t.Parallel()

	n := NewEqualizerNode("eq1", 1)
	_ = n.SetParameter(paramName(0, "gain"), 12)
	input := audiograph.AudioBuffer{Channels: 2, SampleRate: 48000, Samples: []float32{1, 1, 1, 1}}
	if _, err := n.Process(input); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	n.Reset()
	b := n.bands[0]
	if b.left.x1 != 0 || b.left.y1 != 0 || b.right.x1 != 0 || b.right.y1 != 0 {
		t.Error("Reset() left nonzero filter history")
	}
}

func paramName(band int, field string) string {
	return fmt.Sprintf("band_%d_%s", band, field)
}

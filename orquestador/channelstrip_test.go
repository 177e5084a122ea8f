package orquestador

import (
	"testing"

	"github.com/cwbudde/audiograph/audiograph"
)

func TestChannelStripNodeDefaults(t *testing.T) {
	t.Parallel()

	n := NewChannelStripNode("ch1")
	if got, _ := n.GetParameter("gain"); got != 0 {
		t.Errorf("gain = %v, want 0", got)
	}
	if got, _ := n.GetParameter("pan"); got != 0 {
		t.Errorf("pan = %v, want 0", got)
	}
}

func TestChannelStripNodeMuteProducesSilence(t *testing.T) {
	t.Parallel()

	n := NewChannelStripNode("ch1")
	input := audiograph.AudioBuffer{Channels: 2, SampleRate: 48000, Samples: []float32{1, 1, 1, 1}}

	unmuted, err := n.Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(unmuted.Samples) != len(input.Samples) {
		t.Fatalf("len(Samples) = %d, want %d", len(unmuted.Samples), len(input.Samples))
	}

	if err := n.SetParameter("mute", 1); err != nil {
		t.Fatalf("SetParameter(mute) error = %v", err)
	}
	muted, err := n.Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for i, s := range muted.Samples {
		if s != 0 {
			t.Errorf("sample %d = %v, want 0 when muted", i, s)
		}
	}
}

func TestChannelStripNodeGainAndPanRoundtrip(t *testing.T) {
	t.Parallel()

	n := NewChannelStripNode("ch1")
	if err := n.SetParameter("gain", 6); err != nil {
		t.Fatalf("SetParameter(gain) error = %v", err)
	}
	if err := n.SetParameter("pan", 0.5); err != nil {
		t.Fatalf("SetParameter(pan) error = %v", err)
	}
	if got, _ := n.GetParameter("gain"); got != 6 {
		t.Errorf("gain = %v, want 6", got)
	}
	if got, _ := n.GetParameter("pan"); got != 0.5 {
		t.Errorf("pan = %v, want 0.5", got)
	}
}

func TestChannelStripNodeSoloStoredNotEnforced(t *testing.T) {
	t.Parallel()

	n := NewChannelStripNode("ch1")
	if err := n.SetParameter("solo", 1); err != nil {
		t.Fatalf("SetParameter(solo) error = %v", err)
	}
	if got, _ := n.GetParameter("solo"); got != 1 {
		t.Errorf("solo = %v, want 1", got)
	}

	input := audiograph.AudioBuffer{Channels: 1, SampleRate: 48000, Samples: []float32{1}}
	out, err := n.Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out.Samples[0] == 0 {
		t.Error("solo alone should not silence output")
	}
}

func TestChannelStripNodeUnknownParameter(t *testing.T) {
	t.Parallel()

	n := NewChannelStripNode("ch1")
	if err := n.SetParameter("bogus", 0); err == nil {
		t.Error("SetParameter(bogus) error = nil, want error")
	}
}

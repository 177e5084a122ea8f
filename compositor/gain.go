package compositor

import (
	"math"

	"github.com/cwbudde/audiograph/audiograph"
)

// GainNode applies a single broadband gain, stored as dB and cached as a
// linear multiplier so Process never takes a logarithm per sample.
type GainNode struct {
	audiograph.BaseNode

	id         string
	gainDB     float32
	gainLinear float32
}

// NewGainNode creates a gain stage at unity (0 dB).
func NewGainNode(id string) *GainNode {
	return &GainNode{id: id, gainDB: 0, gainLinear: 1}
}

func (n *GainNode) ID() string { return n.id }

func (n *GainNode) Metadata() audiograph.NodeMetadata {
	return audiograph.NodeMetadata{
		Name:           "Gain",
		Category:       audiograph.CategoryEffect,
		InputChannels:  2,
		OutputChannels: 2,
		Parameters: []audiograph.ParameterDescriptor{
			audiograph.NewParameterDescriptor("gain", -60, 24, 0, "dB", "Gain"),
		},
		Plugin: "compositor",
	}
}

func (n *GainNode) Process(input audiograph.AudioBuffer) (audiograph.AudioBuffer, error) {
	out := input.Clone()
	out.ApplyGain(n.gainLinear)
	return out, nil
}

func (n *GainNode) SetParameter(name string, value float32) error {
	if name != "gain" {
		return audiograph.ErrParameterNotFound(n.id, name)
	}
	n.gainDB = clamp32(value, -60, 24)
	n.gainLinear = float32(math.Pow(10, float64(n.gainDB)/20))
	return nil
}

func (n *GainNode) GetParameter(name string) (float32, bool) {
	if name != "gain" {
		return 0, false
	}
	return n.gainDB, true
}

package orquestador

import (
	"math"

	"github.com/cwbudde/audiograph/audiograph"
)

const panQuarterPi = math.Pi / 4

// PanNode applies equal-power (constant-power) stereo panning. A linear pan
// law is deliberately not used: it loses roughly 3 dB of perceived loudness
// at center.
type PanNode struct {
	audiograph.BaseNode

	id  string
	pan float32 // -1 (left) .. 1 (right)
}

// NewPanNode creates a pan node centered.
func NewPanNode(id string) *PanNode {
	return &PanNode{id: id, pan: 0}
}

func (n *PanNode) gains() (left, right float32) {
	angle := float64(n.pan+1) * panQuarterPi
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}

func (n *PanNode) ID() string { return n.id }

func (n *PanNode) Metadata() audiograph.NodeMetadata {
	return audiograph.NodeMetadata{
		Name:           "Pan",
		Category:       audiograph.CategoryRouting,
		InputChannels:  2,
		OutputChannels: 2,
		Parameters: []audiograph.ParameterDescriptor{
			audiograph.NewParameterDescriptor("pan", -1, 1, 0, "", "Pan"),
		},
		Plugin: "orquestador",
	}
}

// Process scales left/right frame pairs by the equal-power gains. A trailing
// unpaired sample in an odd-length buffer is left untouched.
func (n *PanNode) Process(input audiograph.AudioBuffer) (audiograph.AudioBuffer, error) {
	out := input.Clone()
	left, right := n.gains()
	samples := out.Samples
	for i := 0; i+1 < len(samples); i += 2 {
		samples[i] *= left
		samples[i+1] *= right
	}
	return out, nil
}

func (n *PanNode) SetParameter(name string, value float32) error {
	if name != "pan" {
		return audiograph.ErrParameterNotFound(n.id, name)
	}
	if value < -1 {
		value = -1
	} else if value > 1 {
		value = 1
	}
	n.pan = value
	return nil
}

func (n *PanNode) GetParameter(name string) (float32, bool) {
	if name != "pan" {
		return 0, false
	}
	return n.pan, true
}

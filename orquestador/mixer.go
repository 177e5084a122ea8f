package orquestador

import "github.com/cwbudde/audiograph/audiograph"

// MixerNode passes its (already-summed) input straight through: fan-in
// mixing happens in the graph's gather step before Process is ever called,
// so this node's only job is to carry metadata and report a meter reading
// for whatever last passed through it.
type MixerNode struct {
	audiograph.BaseNode

	id        string
	numInputs int

	lastPeak float32
	lastRMS  float32
}

// NewMixerNode creates a mixer labeled for numInputs connections (purely
// descriptive; the graph enforces no arity limit on fan-in).
func NewMixerNode(id string, numInputs int) *MixerNode {
	return &MixerNode{id: id, numInputs: numInputs}
}

func (n *MixerNode) ID() string { return n.id }

func (n *MixerNode) Metadata() audiograph.NodeMetadata {
	return audiograph.NodeMetadata{
		Name:           "Mixer",
		Category:       audiograph.CategoryRouting,
		InputChannels:  2,
		OutputChannels: 2,
		Parameters:     nil,
		Plugin:         "orquestador",
	}
}

// Process is a passthrough; it only updates the node's metering state.
func (n *MixerNode) Process(input audiograph.AudioBuffer) (audiograph.AudioBuffer, error) {
	n.lastPeak = input.PeakLevel()
	n.lastRMS = input.RMSLevel()
	return input.Clone(), nil
}

func (n *MixerNode) SetParameter(name string, value float32) error {
	return audiograph.ErrParameterNotFound(n.id, name)
}

func (n *MixerNode) GetParameter(name string) (float32, bool) {
	return 0, false
}

// Meter reports the peak and RMS level observed in the most recently
// processed buffer.
func (n *MixerNode) Meter() (peak, rms float32) {
	return n.lastPeak, n.lastRMS
}

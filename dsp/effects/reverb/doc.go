// Package reverb implements a mono feedback-delay-network reverb processor.
// Callers drive one FDNReverb instance per audio channel and interleave the
// result themselves; the type carries no notion of channel count or buffer
// layout of its own.
package reverb

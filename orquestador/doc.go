// Package orquestador implements the routing plugin family for an
// audiograph graph: stereo panning, a combined gain/pan/mute/solo channel
// strip, and a summing mixer passthrough.
package orquestador

// Package compositor implements the effects plugin family for an
// audiograph graph: gain, parametric EQ, a feed-forward peak compressor,
// and a feedback-delay-network reverb.
//
// Every node satisfies audiograph.AudioNode and can be added to a graph
// alongside the routing nodes in the orquestador package.
package compositor

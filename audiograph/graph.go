package audiograph

import "sort"

// defaultSilenceChannels, defaultSilenceSampleRate, and defaultSilenceFrames
// describe the buffer gather_inputs hands to a node with no incoming
// connections during a sweep that has not seeded it.
const (
	defaultSilenceChannels   = 2
	defaultSilenceSampleRate = 48000
	defaultSilenceFrames     = 512
)

// AudioGraph is a directed acyclic graph of AudioNode instances, scheduled
// in topological order and executed one buffer at a time. A graph carries
// no internal lock; callers that share a graph between a control thread and
// a processing thread must provide their own reader/writer coordination
// (see package doc).
type AudioGraph struct {
	nodes          map[string]AudioNode
	connections    []Connection
	executionOrder []string
	bufferCache    map[string]AudioBuffer
}

// NewAudioGraph returns an empty graph.
func NewAudioGraph() *AudioGraph {
	return &AudioGraph{
		nodes:       make(map[string]AudioNode),
		bufferCache: make(map[string]AudioBuffer),
	}
}

// AddNode registers node under its own id.
func (g *AudioGraph) AddNode(node AudioNode) error {
	id := node.ID()
	if _, exists := g.nodes[id]; exists {
		return errNodeAlreadyExists(id)
	}
	g.nodes[id] = node
	return g.recomputeExecutionOrder()
}

// RemoveNode drops node id and every connection touching it.
func (g *AudioGraph) RemoveNode(id string) error {
	if _, exists := g.nodes[id]; !exists {
		return errNodeNotFound(id)
	}
	delete(g.nodes, id)
	delete(g.bufferCache, id)

	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.FromNode != id && c.ToNode != id {
			kept = append(kept, c)
		}
	}
	g.connections = kept

	return g.recomputeExecutionOrder()
}

// Connect adds a directed edge. It rejects unknown endpoints with
// NodeNotFound and edges that would close a cycle with CycleDetected,
// leaving the graph unchanged in either case.
func (g *AudioGraph) Connect(conn Connection) error {
	if _, exists := g.nodes[conn.FromNode]; !exists {
		return errNodeNotFound(conn.FromNode)
	}
	if _, exists := g.nodes[conn.ToNode]; !exists {
		return errNodeNotFound(conn.ToNode)
	}
	if g.wouldCreateCycle(conn) {
		return errCycleDetected(conn.FromNode, conn.ToNode)
	}

	g.connections = append(g.connections, conn)
	return g.recomputeExecutionOrder()
}

// Disconnect removes every edge from fromNode to toNode. Removing an edge
// that doesn't exist is a no-op, not an error.
func (g *AudioGraph) Disconnect(fromNode, toNode string) error {
	kept := g.connections[:0]
	for _, c := range g.connections {
		if !(c.FromNode == fromNode && c.ToNode == toNode) {
			kept = append(kept, c)
		}
	}
	g.connections = kept
	return g.recomputeExecutionOrder()
}

// Process seeds the first node of the execution order with input, runs
// every node in topological order, and returns the cached buffer of the
// sink node chosen by finalOutput (the lexicographically smallest sink id).
func (g *AudioGraph) Process(input AudioBuffer) (AudioBuffer, error) {
	g.bufferCache = make(map[string]AudioBuffer, len(g.nodes))

	if len(g.executionOrder) > 0 {
		g.bufferCache[g.executionOrder[0]] = input
	}

	for _, nodeID := range g.executionOrder {
		gathered, err := g.gatherInputs(nodeID)
		if err != nil {
			return AudioBuffer{}, err
		}

		node, ok := g.nodes[nodeID]
		if !ok {
			return AudioBuffer{}, errNodeNotFound(nodeID)
		}

		out, err := node.Process(gathered)
		if err != nil {
			return AudioBuffer{}, errProcessing(nodeID, err)
		}

		g.bufferCache[nodeID] = out
	}

	return g.finalOutput()
}

// SetParameter forwards value to nodeID's named parameter.
func (g *AudioGraph) SetParameter(nodeID, name string, value float32) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return errNodeNotFound(nodeID)
	}
	return node.SetParameter(name, value)
}

// GetParameter reads nodeID's named parameter. ok is false when the
// parameter name is unknown to the node.
func (g *AudioGraph) GetParameter(nodeID, name string) (value float32, ok bool, err error) {
	node, exists := g.nodes[nodeID]
	if !exists {
		return 0, false, errNodeNotFound(nodeID)
	}
	v, ok := node.GetParameter(name)
	return v, ok, nil
}

// NodeIDs returns every node id currently in the graph, in no particular
// order.
func (g *AudioGraph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}

// Connections returns the current connection list. The slice is owned by
// the graph; callers must not mutate it.
func (g *AudioGraph) Connections() []Connection {
	return g.connections
}

// ExecutionOrder returns the cached topological order.
func (g *AudioGraph) ExecutionOrder() []string {
	return g.executionOrder
}

func (g *AudioGraph) recomputeExecutionOrder() error {
	inDegree := make(map[string]int, len(g.nodes))
	adj := make(map[string][]string, len(g.nodes))

	for id := range g.nodes {
		inDegree[id] = 0
		adj[id] = nil
	}

	for _, c := range g.connections {
		inDegree[c.ToNode]++
		adj[c.FromNode] = append(adj[c.FromNode], c.ToNode)
	}

	queue := make([]string, 0, len(g.nodes))
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)

		for _, neighbor := range adj[id] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		return &GraphError{Kind: ErrCycleDetected}
	}

	g.executionOrder = sorted
	return nil
}

// wouldCreateCycle walks forward from conn.ToNode over the existing edge
// set looking for conn.FromNode, i.e. a path back to the new edge's source.
func (g *AudioGraph) wouldCreateCycle(conn Connection) bool {
	visited := make(map[string]bool)
	stack := []string{conn.ToNode}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == conn.FromNode {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, c := range g.connections {
			if c.FromNode == current {
				stack = append(stack, c.ToNode)
			}
		}
	}

	return false
}

// gatherInputs sums the cached output of every upstream node feeding
// nodeID. A node with no incoming connections receives the buffer seeded
// for it by Process, or a fresh silent buffer when it was not seeded.
func (g *AudioGraph) gatherInputs(nodeID string) (AudioBuffer, error) {
	var incoming []Connection
	for _, c := range g.connections {
		if c.ToNode == nodeID {
			incoming = append(incoming, c)
		}
	}

	if len(incoming) == 0 {
		if seeded, ok := g.bufferCache[nodeID]; ok {
			return seeded, nil
		}
		return Silence(defaultSilenceChannels, defaultSilenceSampleRate, defaultSilenceFrames), nil
	}

	first, ok := g.bufferCache[incoming[0].FromNode]
	if !ok {
		return AudioBuffer{}, errNodeNotFound(incoming[0].FromNode)
	}
	mixed := first.Clone()

	for _, c := range incoming[1:] {
		upstream, ok := g.bufferCache[c.FromNode]
		if !ok {
			return AudioBuffer{}, errNodeNotFound(c.FromNode)
		}
		mixed.Mix(upstream)
	}

	return mixed, nil
}

// finalOutput returns the cached buffer of a sink node (a node with no
// outgoing connection). When multiple sinks exist, the lexicographically
// smallest id is chosen so the result is deterministic for a given
// topology, independent of Go's randomized map iteration order.
func (g *AudioGraph) finalOutput() (AudioBuffer, error) {
	hasOutgoing := make(map[string]bool, len(g.nodes))
	for _, c := range g.connections {
		hasOutgoing[c.FromNode] = true
	}

	var sinks []string
	for id := range g.nodes {
		if !hasOutgoing[id] {
			sinks = append(sinks, id)
		}
	}
	if len(sinks) == 0 {
		return AudioBuffer{}, &GraphError{Kind: ErrProcessingError, Detail: "no sink nodes found"}
	}
	sort.Strings(sinks)

	out, ok := g.bufferCache[sinks[0]]
	if !ok {
		return AudioBuffer{}, errNodeNotFound(sinks[0])
	}
	return out, nil
}

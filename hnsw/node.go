package hnsw

import (
	"sort"

	"github.com/plkumar/simple-vectordb-go/distance"
)

// sentinelLayerBelow marks a node with no counterpart in the layer below it
// (every node in the last layer carries this).
const sentinelLayerBelow int64 = -1

// Node is a record inside one layer: its vector payload, the identifiers of
// its neighbors within the same layer, and a descent pointer to its
// counterpart in the layer immediately below (or the sentinel).
type Node struct {
	Vector      []float64
	Connections []uint64
	LayerBelow  int64
}

// Layer is an ordered, append-only sequence of nodes. A node's position in
// the sequence is its identifier and never changes.
type Layer []Node

// prune trims the connection list of the node at id down to the
// maxConnections closest neighbors by distance to the node's own vector,
// de-duplicating along the way. It is local, deterministic, and idempotent:
// running it twice on an already-pruned node leaves the list unchanged.
func prune(layer Layer, id uint64, maxConnections int) {
	node := &layer[id]
	if len(node.Connections) == 0 {
		return
	}

	type scored struct {
		node uint64
		dist float64
	}

	seen := make(map[uint64]bool, len(node.Connections))
	scoredConns := make([]scored, 0, len(node.Connections))
	for _, conn := range node.Connections {
		if conn == id || conn >= uint64(len(layer)) || seen[conn] {
			continue
		}
		seen[conn] = true
		d, err := distance.SquaredEuclidean(node.Vector, layer[conn].Vector)
		if err != nil {
			continue
		}
		scoredConns = append(scoredConns, scored{node: conn, dist: d})
	}

	sort.Slice(scoredConns, func(i, j int) bool { return scoredConns[i].dist < scoredConns[j].dist })

	if len(scoredConns) > maxConnections {
		scoredConns = scoredConns[:maxConnections]
	}

	conns := make([]uint64, len(scoredConns))
	for i, s := range scoredConns {
		conns[i] = s.node
	}
	node.Connections = conns
}

// hasConnection reports whether id appears in conns.
func hasConnection(conns []uint64, id uint64) bool {
	for _, c := range conns {
		if c == id {
			return true
		}
	}
	return false
}

// withoutConnection returns conns with id removed, preserving order.
func withoutConnection(conns []uint64, id uint64) []uint64 {
	out := make([]uint64, 0, len(conns))
	for _, c := range conns {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}

package hnsw

import (
	"container/heap"

	"github.com/bits-and-blooms/bitset"

	"github.com/plkumar/simple-vectordb-go/distance"
	"github.com/plkumar/simple-vectordb-go/queue"
)

// Result is one entry of a search result: a node's position within its
// layer and its Euclidean distance to the query that produced it.
type Result struct {
	Distance float64
	NodeID   uint64
}

// searchLayer performs a bounded beam search for query within a single
// layer, starting from entry. It returns up to ef nodes ordered ascending
// by true Euclidean distance.
//
// It fails with InvalidEntryError if entry is out of range for a non-empty
// layer; it returns an empty result (no error) if the layer is empty or ef
// is non-positive.
func searchLayer(layer Layer, entry uint64, query []float64, ef int) ([]Result, error) {
	if len(layer) == 0 || ef <= 0 {
		return nil, nil
	}
	if entry >= uint64(len(layer)) {
		return nil, &InvalidEntryError{Entry: entry, LayerSize: len(layer)}
	}

	entryDist, err := distance.SquaredEuclidean(layer[entry].Vector, query)
	if err != nil {
		return nil, err
	}

	var visited bitset.BitSet
	visited.Set(uint(entry))

	candidates := queue.New(false) // min-heap: smallest distance expands first.
	heap.Push(candidates, &queue.Item{Node: entry, Distance: entryDist})

	results := queue.New(true) // max-heap: largest distance sorts to the top, bounded to ef.
	heap.Push(results, &queue.Item{Node: entry, Distance: entryDist})

	for candidates.Len() > 0 {
		current := heap.Pop(candidates).(*queue.Item)

		if results.Len() >= ef && current.Distance > results.Top().Distance {
			break
		}

		for _, conn := range layer[current.Node].Connections {
			if conn >= uint64(len(layer)) || visited.Test(uint(conn)) {
				continue
			}
			visited.Set(uint(conn))

			d, err := distance.SquaredEuclidean(layer[conn].Vector, query)
			if err != nil {
				return nil, err
			}

			if results.Len() < ef || d < results.Top().Distance {
				heap.Push(candidates, &queue.Item{Node: conn, Distance: d})
				heap.Push(results, &queue.Item{Node: conn, Distance: d})
				if results.Len() > ef {
					heap.Pop(results)
				}
			}
		}
	}

	out := make([]Result, results.Len())
	for i := len(out) - 1; i >= 0; i-- {
		item := heap.Pop(results).(*queue.Item)
		out[i] = Result{Distance: sqrtDistance(item.Distance), NodeID: item.Node}
	}
	return out, nil
}

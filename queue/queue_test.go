package queue

import (
	"container/heap"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var distances = []float64{0.4, 9, 0.001, 0.0534, 0.234, 2.03, 2.042, 2.532, 1.0009, 0.329, 0.193, 0.999, 0.020391, 2.0991, 1.203, 10.03, 1.039, 1.0008, 5.029, 0.789}

func TestPriorityQueueAscending(t *testing.T) {
	pq := New(false)

	for i, d := range distances {
		heap.Push(pq, &Item{Node: uint64(i), Distance: d})
	}

	assert.Equal(t, len(distances), pq.Len())

	prev := heap.Pop(pq).(*Item)
	for pq.Len() > 0 {
		curr := heap.Pop(pq).(*Item)
		assert.LessOrEqual(t, prev.Distance, curr.Distance, "ascending heap must pop smallest first")
		prev = curr
	}
}

func TestPriorityQueueDescending(t *testing.T) {
	pq := New(true)

	for i, d := range distances {
		heap.Push(pq, &Item{Node: uint64(i), Distance: d})
	}

	prev := heap.Pop(pq).(*Item)
	for pq.Len() > 0 {
		curr := heap.Pop(pq).(*Item)
		assert.GreaterOrEqual(t, prev.Distance, curr.Distance, "descending heap must pop largest first")
		prev = curr
	}
}

func TestPriorityQueueTop(t *testing.T) {
	pq := New(true) // max-heap: Top is the worst (largest distance) result.
	heap.Push(pq, &Item{Node: 1, Distance: 0.1})
	heap.Push(pq, &Item{Node: 2, Distance: 0.9})
	heap.Push(pq, &Item{Node: 3, Distance: 0.5})

	assert.Equal(t, 0.9, pq.Top().Distance)
}

func TestPriorityQueueRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pq := New(false)

	for i := 0; i < 200; i++ {
		heap.Push(pq, &Item{Node: uint64(i), Distance: rng.Float64()})
	}

	assert.Equal(t, 200, pq.Len())

	prev := heap.Pop(pq).(*Item)
	for pq.Len() > 0 {
		curr := heap.Pop(pq).(*Item)
		assert.LessOrEqual(t, prev.Distance, curr.Distance)
		prev = curr
	}
}

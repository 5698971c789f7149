package hnsw

import (
	"math"
	"math/rand"
	"time"

	"github.com/plkumar/simple-vectordb-go/distance"
)

// Options configures a new Index.
type Options struct {
	// L is the number of layers. A vector is stored from its drawn layer up
	// to layer L-1, so layer L-1 holds every inserted vector and
	// lower-numbered layers hold progressively fewer.
	L int

	// ML controls the expected distribution of a vector's drawn layer:
	// larger values draw higher layers, so fewer vectors are stored in the
	// low-numbered layers.
	ML float64

	// EFC is the beam width used for the layer searches performed during
	// insertion.
	EFC int

	// MaxConnections caps the number of connections any node may retain in
	// any layer.
	MaxConnections int

	// Seed pins the index's RNG for deterministic layer assignment. Leave
	// nil for a non-deterministic seed.
	Seed *int64
}

// DefaultOptions mirrors the façade's documented defaults.
var DefaultOptions = Options{
	L:              5,
	ML:             0.62,
	EFC:            10,
	MaxConnections: 16,
}

// Option mutates an Options value; pass one or more to New.
type Option func(*Options)

// WithL sets the layer count.
func WithL(l int) Option { return func(o *Options) { o.L = l } }

// WithML sets the layer-assignment multiplier.
func WithML(ml float64) Option { return func(o *Options) { o.ML = ml } }

// WithEFC sets the construction beam width.
func WithEFC(efc int) Option { return func(o *Options) { o.EFC = efc } }

// WithMaxConnections sets the per-node connection cap.
func WithMaxConnections(m int) Option { return func(o *Options) { o.MaxConnections = m } }

// WithSeed pins the index's RNG.
func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = &seed } }

// Index is a Hierarchical Navigable Small World graph: L layers of nodes,
// layer L-1 holding every inserted vector. It is single-threaded and holds
// no lock: Search and ToText only read and may run alongside each other,
// but callers must keep Insert exclusive of every other call.
type Index struct {
	layers []Layer

	l              int
	ml             float64
	efc            int
	maxConnections int

	dimension int

	rng *rand.Rand
}

// New constructs an empty Index. Unset or invalid options fall back to
// DefaultOptions' value for that field.
func New(optFns ...Option) *Index {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.L < 1 {
		opts.L = DefaultOptions.L
	}
	if opts.ML <= 0 {
		opts.ML = DefaultOptions.ML
	}
	if opts.EFC < 1 {
		opts.EFC = DefaultOptions.EFC
	}
	if opts.MaxConnections < 1 {
		opts.MaxConnections = DefaultOptions.MaxConnections
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	return &Index{
		layers:         make([]Layer, opts.L),
		l:              opts.L,
		ml:             opts.ML,
		efc:            opts.EFC,
		maxConnections: opts.MaxConnections,
		rng:            rand.New(rand.NewSource(seed)), //nolint:gosec
	}
}

// drawInsertLayer samples a top layer for a newly inserted vector: draw a
// uniform real in (0, 1], compute floor(-ln(u) * mL), clamp into [0, L-1].
func (ix *Index) drawInsertLayer() int {
	u := 1 - ix.rng.Float64() // rand.Float64 is [0, 1); flip to (0, 1] so log never sees zero.
	l := int(math.Floor(-math.Log(u) * ix.ml))
	if l < 0 {
		l = 0
	}
	if l > ix.l-1 {
		l = ix.l - 1
	}
	return l
}

// Insert adds v to the index. It fails with DimensionMismatchError if the
// index already holds vectors of a different length; on failure the index
// is left exactly as it was before the call.
func (ix *Index) Insert(v []float64) error {
	if ix.dimension != 0 && len(v) != ix.dimension {
		return &distance.MismatchError{Expected: ix.dimension, Actual: len(v)}
	}

	vec := make([]float64, len(v))
	copy(vec, v)

	top := ix.drawInsertLayer()
	start := uint64(0)

	for n := 0; n < ix.l; n++ {
		layer := ix.layers[n]

		if len(layer) == 0 {
			ix.layers[n] = append(layer, Node{Vector: vec, LayerBelow: ix.layerBelowFor(n)})
			continue
		}

		if n < top {
			results, err := searchLayer(layer, start, vec, 1)
			if err != nil {
				return err
			}
			start = results[0].NodeID
			continue
		}

		results, err := searchLayer(layer, start, vec, ix.efc)
		if err != nil {
			return err
		}

		selected := results
		if len(selected) > ix.maxConnections {
			selected = selected[:ix.maxConnections]
		}

		newIndex := uint64(len(layer))
		newNode := Node{Vector: vec, LayerBelow: ix.layerBelowFor(n)}
		for _, r := range selected {
			newNode.Connections = append(newNode.Connections, r.NodeID)
			layer[r.NodeID].Connections = append(layer[r.NodeID].Connections, newIndex)
		}

		layer = append(layer, newNode)
		ix.layers[n] = layer

		oldStart := start
		for _, r := range selected {
			prune(layer, r.NodeID, ix.maxConnections)
			if !hasConnection(layer[r.NodeID].Connections, newIndex) {
				layer[newIndex].Connections = withoutConnection(layer[newIndex].Connections, r.NodeID)
			}
		}
		prune(layer, newIndex, ix.maxConnections)

		start = uint64(layer[oldStart].LayerBelow)
	}

	ix.dimension = len(v)
	return nil
}

// layerBelowFor returns the descent pointer a node newly appended to layer
// n should carry: the position its counterpart will occupy in layer n+1,
// or the sentinel for the last layer.
func (ix *Index) layerBelowFor(n int) int64 {
	if n == ix.l-1 {
		return sentinelLayerBelow
	}
	return int64(len(ix.layers[n+1]))
}

// Search returns up to ef nodes nearest to query, ascending by Euclidean
// distance. The search descends through every layer via each hop's
// descent pointer and returns the ids used by the last layer it reaches
// (every node participates by the time that layer is processed, so the
// ids returned there correspond 1:1 with insertion order). It fails with
// DimensionMismatchError if query's length disagrees with the index's
// established dimensionality.
func (ix *Index) Search(query []float64, ef int) ([]Result, error) {
	if ef <= 0 || len(ix.layers) == 0 || len(ix.layers[0]) == 0 {
		return nil, nil
	}
	if ix.dimension != 0 && len(query) != ix.dimension {
		return nil, &distance.MismatchError{Expected: ix.dimension, Actual: len(query)}
	}

	start := uint64(0)
	for n := 0; n < ix.l; n++ {
		layer := ix.layers[n]

		results, err := searchLayer(layer, start, query, ef)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, nil
		}

		best := layer[results[0].NodeID]
		if best.LayerBelow == sentinelLayerBelow {
			return results, nil
		}
		start = uint64(best.LayerBelow)
	}

	return nil, nil
}

func sqrtDistance(squared float64) float64 {
	return math.Sqrt(squared)
}

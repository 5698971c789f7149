package hnsw

import (
	"fmt"
	"math/rand"
	"time"

	gojson "github.com/goccy/go-json"
)

// defaultMaxConnectionsOnLoad is used when a document omits maxConnections,
// matching documents produced by older variants of the format.
const defaultMaxConnectionsOnLoad = 16

const currentDocumentVersion = 1

type nodeDocument struct {
	Vector      []float64 `json:"vector"`
	Connections []uint64  `json:"connections"`
	LayerBelow  int64     `json:"layerBelow"`
}

type document struct {
	Version        *int             `json:"version,omitempty"`
	L              int              `json:"L"`
	ML             float64          `json:"mL"`
	EFC            int              `json:"efc"`
	MaxConnections *int             `json:"maxConnections,omitempty"`
	Layers         [][]nodeDocument `json:"index"`
}

// ToText serializes the full index (its four scalars plus every layer's
// nodes) into a self-describing JSON document.
func (ix *Index) ToText() (string, error) {
	version := currentDocumentVersion
	maxConnections := ix.maxConnections

	doc := document{
		Version:        &version,
		L:              ix.l,
		ML:             ix.ml,
		EFC:            ix.efc,
		MaxConnections: &maxConnections,
		Layers:         make([][]nodeDocument, len(ix.layers)),
	}

	for n, layer := range ix.layers {
		nodes := make([]nodeDocument, len(layer))
		for i, node := range layer {
			nodes[i] = nodeDocument{
				Vector:      node.Vector,
				Connections: node.Connections,
				LayerBelow:  node.LayerBelow,
			}
		}
		doc.Layers[n] = nodes
	}

	b, err := gojson.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromText reconstructs an Index from a document produced by ToText (or any
// document following the same format). It fails with MalformedDocumentError
// on missing required fields, a wrong-length index, or malformed values, and
// never returns a partially built index.
func FromText(text string) (*Index, error) {
	var doc document
	if err := gojson.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &MalformedDocumentError{Reason: err.Error()}
	}

	if doc.L <= 0 {
		return nil, &MalformedDocumentError{Reason: "L must be a positive integer"}
	}
	if len(doc.Layers) != doc.L {
		return nil, &MalformedDocumentError{Reason: fmt.Sprintf("index has %d layers, want %d (L)", len(doc.Layers), doc.L)}
	}
	if doc.ML <= 0 {
		return nil, &MalformedDocumentError{Reason: "mL must be a positive real"}
	}
	if doc.EFC < 1 {
		return nil, &MalformedDocumentError{Reason: "efc must be a positive integer"}
	}

	maxConnections := defaultMaxConnectionsOnLoad
	if doc.MaxConnections != nil {
		if *doc.MaxConnections < 1 {
			return nil, &MalformedDocumentError{Reason: "maxConnections must be a positive integer"}
		}
		maxConnections = *doc.MaxConnections
	}

	for n, nodes := range doc.Layers {
		last := n == doc.L-1
		for i, nd := range nodes {
			if last {
				if nd.LayerBelow != sentinelLayerBelow {
					return nil, &MalformedDocumentError{Reason: fmt.Sprintf("layer %d node %d: layerBelow must be -1 on the last layer", n, i)}
				}
				continue
			}
			if nd.LayerBelow < 0 || int(nd.LayerBelow) >= len(doc.Layers[n+1]) {
				return nil, &MalformedDocumentError{Reason: fmt.Sprintf("layer %d node %d: layerBelow %d is out of range for layer %d", n, i, nd.LayerBelow, n+1)}
			}
		}
	}

	ix := &Index{
		layers:         make([]Layer, doc.L),
		l:              doc.L,
		ml:             doc.ML,
		efc:            doc.EFC,
		maxConnections: maxConnections,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec
	}

	dimension := 0
	for n, nodes := range doc.Layers {
		layer := make(Layer, len(nodes))
		for i, nd := range nodes {
			if dimension == 0 && len(nd.Vector) > 0 {
				dimension = len(nd.Vector)
			}
			conns := make([]uint64, len(nd.Connections))
			copy(conns, nd.Connections)
			layer[i] = Node{Vector: nd.Vector, Connections: conns, LayerBelow: nd.LayerBelow}
		}
		ix.layers[n] = layer
	}
	ix.dimension = dimension

	// Out-of-range and self-referencing connections are tolerated by search
	// (graceful, not an error) but pruning still runs so invariant (3) holds
	// even when the source document was over-full.
	for _, layer := range ix.layers {
		for i := range layer {
			prune(layer, uint64(i), ix.maxConnections)
		}
	}

	return ix, nil
}

// ToBinary always fails: the binary codec is declared but not implemented.
func (ix *Index) ToBinary() ([]byte, error) {
	return nil, ErrUnsupported
}

// FromBinary always fails: the binary codec is declared but not implemented.
func FromBinary(data []byte) (*Index, error) {
	return nil, ErrUnsupported
}

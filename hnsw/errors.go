package hnsw

import (
	"errors"
	"fmt"

	"github.com/plkumar/simple-vectordb-go/distance"
)

// ErrUnsupported is returned by the binary codec, which is declared but
// never implemented: callers must see a clean failure, not a silent no-op.
var ErrUnsupported = errors.New("hnsw: binary codec is unsupported")

// DimensionMismatchError reports that a vector handed to Insert or Search
// disagrees in length with the index's established dimensionality.
type DimensionMismatchError = distance.MismatchError

// InvalidEntryError reports that a layer search was asked to start from an
// entry index outside the layer's bounds.
type InvalidEntryError struct {
	Entry     uint64
	LayerSize int
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("hnsw: invalid entry %d for layer of size %d", e.Entry, e.LayerSize)
}

// MalformedDocumentError reports that a state document could not be
// reconstructed into an index: a missing required field, a wrong-length
// index, or a value of the wrong shape.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("hnsw: malformed document: %s", e.Reason)
}

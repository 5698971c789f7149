// Package hnsw implements a Hierarchical Navigable Small World graph: a
// layered proximity graph that answers approximate nearest-neighbor queries
// under Euclidean distance.
//
// The index is a sequence of L layers, visited in ascending order from layer
// 0. Insert draws a random layer t for the new vector, routes greedily
// through layers 0..t-1 without storing it there, then stores and links it
// in layers t..L-1 with a bounded-width beam search. Layer L-1 therefore
// holds every inserted vector and layer 0 the fewest. Search performs the
// same descent and returns the best matches of layer L-1, the layer whose
// nodes carry no descent pointer.
//
// The engine is single-threaded and holds no process-global state: its RNG
// is a per-instance, constructor-seedable field, and it never logs. Callers
// needing concurrent access must serialize writes themselves.
package hnsw

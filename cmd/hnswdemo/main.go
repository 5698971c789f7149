// Command hnswdemo is a small host-side smoke test for the hnsw engine: it
// inserts a handful of vectors, runs a query, and round-trips the index
// through its text codec. The engine itself never logs; this demo is the
// caller that does.
package main

import (
	"log/slog"
	"os"

	"github.com/plkumar/simple-vectordb-go/hnsw"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	index := hnsw.New(hnsw.WithSeed(42))

	vectors := [][]float64{
		{1, 2, 3},
		{1, 2, 3.1},
		{1.1, 2.1, 3},
	}
	for i, v := range vectors {
		if err := index.Insert(v); err != nil {
			logger.Error("insert failed", "vector", i, "error", err)
			os.Exit(1)
		}
	}

	query := []float64{1.1, 2.1, 3.1}
	results, err := index.Search(query, 3)
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	for i, r := range results {
		logger.Info("match", "rank", i+1, "node_id", r.NodeID, "distance", r.Distance)
	}

	text, err := index.ToText()
	if err != nil {
		logger.Error("serialize failed", "error", err)
		os.Exit(1)
	}

	reloaded, err := hnsw.FromText(text)
	if err != nil {
		logger.Error("deserialize failed", "error", err)
		os.Exit(1)
	}

	roundTripped, err := reloaded.Search(query, 3)
	if err != nil {
		logger.Error("round-trip search failed", "error", err)
		os.Exit(1)
	}

	logger.Info("round trip", "results", len(roundTripped))
}

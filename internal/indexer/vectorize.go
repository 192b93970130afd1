package indexer

import (
	"fmt"
	"math"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/rimbakita/kemari/internal/analysis"
	"github.com/rimbakita/kemari/internal/models"
)

// ComputeVectors analyzes every listing document and returns the per-listing
// term vectors (raw term frequency times ln(N/df)) together with the
// document-frequency table. Terms occurring in every document weigh zero
// and are pruned from the vectors; they stay in the frequency table so the
// vocabulary is complete. Analysis runs on a worker pool when workers > 1.
func ComputeVectors(listings []*models.Listing, text *analysis.Analyzer, workers int) (map[string]map[string]float64, map[string]int, error) {
	n := len(listings)
	freqs := make([]map[string]int, n)

	if workers <= 1 || n < 2 {
		for i, l := range listings {
			freqs[i] = text.TermFrequencies(l.Document)
		}
	} else {
		pool, err := ants.NewPool(workers)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create worker pool: %w", err)
		}
		defer pool.Release()

		var wg sync.WaitGroup
		for i := range listings {
			i := i
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				freqs[i] = text.TermFrequencies(listings[i].Document)
			}); err != nil {
				wg.Done()
				return nil, nil, fmt.Errorf("failed to submit analysis job: %w", err)
			}
		}
		wg.Wait()
	}

	docFreqs := make(map[string]int)
	for _, tf := range freqs {
		for term := range tf {
			docFreqs[term]++
		}
	}

	vectors := make(map[string]map[string]float64, n)
	for i, l := range listings {
		vec := make(map[string]float64, len(freqs[i]))
		for term, tf := range freqs[i] {
			idf := math.Log(float64(n) / float64(docFreqs[term]))
			if w := float64(tf) * idf; w > 0 {
				vec[term] = w
			}
		}
		vectors[l.ID] = vec
	}
	return vectors, docFreqs, nil
}

package analytics

import (
	"math"
	"math/rand"
)

const kmeansMaxIterations = 100

// zscore normalizes each feature column to zero mean and unit variance.
// Columns with zero variance are left at zero.
func zscore(features [][]float64) [][]float64 {
	if len(features) == 0 {
		return nil
	}
	rows, cols := len(features), len(features[0])

	mean := make([]float64, cols)
	for _, row := range features {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(rows)
	}

	std := make([]float64, cols)
	for _, row := range features {
		for j, v := range row {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(rows))
	}

	out := make([][]float64, rows)
	for i, row := range features {
		out[i] = make([]float64, cols)
		for j, v := range row {
			if std[j] > 0 {
				out[i][j] = (v - mean[j]) / std[j]
			}
		}
	}
	return out
}

// kMeans runs Lloyd's algorithm with a seeded initialization so results are
// reproducible across runs. Initial centroids are the first k points of a
// seeded shuffle.
func kMeans(points [][]float64, k int, seed int64) (labels []int, centers [][]float64) {
	n := len(points)
	if k <= 0 || n == 0 {
		return nil, nil
	}
	if k > n {
		k = n
	}
	dims := len(points[0])

	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(n)

	centers = make([][]float64, k)
	for i := 0; i < k; i++ {
		centers[i] = append([]float64(nil), points[order[i]]...)
	}

	labels = make([]int, n)
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, center := range centers {
				d := sqDist(p, center)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for j, v := range p {
				sums[c][j] += v
			}
		}
		for c := range centers {
			if counts[c] == 0 {
				continue // empty cluster keeps its previous centroid
			}
			for j := range centers[c] {
				centers[c][j] = sums[c][j] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}
	return labels, centers
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

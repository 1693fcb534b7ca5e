// internal/scoring/normalize.go
package scoring

const (
	normalizedFloor   = 15.0
	normalizedCeiling = 100.0
	uniformPoolScore  = 85.0
)

// Normalize linearly rescales raw scores to [15,100] so the best match in
// any pool reads close to 100% and nobody shows as a near-zero match.
// A uniform pool gets a flat high score instead of a divide-by-zero.
func Normalize(raw []float64) []float64 {
	if len(raw) == 0 {
		return nil
	}

	min, max := raw[0], raw[0]
	for _, r := range raw[1:] {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}

	out := make([]float64, len(raw))
	if max == min {
		for i := range out {
			out[i] = uniformPoolScore
		}
		return out
	}

	span := normalizedCeiling - normalizedFloor
	for i, r := range raw {
		out[i] = normalizedFloor + (r-min)/(max-min)*span
	}
	return out
}

// internal/embedding/similarity.go
package embedding

import (
	"math"

	apperrors "talent-match/internal/common/errors"
)

// CosineSimilarity returns the cosine of the angle between a and b,
// in [-1, 1]. Vectors of different lengths are a data-integrity fault
// (model upgrade without a version bump) and return an error; a zero
// vector on either side yields 0 rather than dividing by zero.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, apperrors.NewVectorDimMismatchError(len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

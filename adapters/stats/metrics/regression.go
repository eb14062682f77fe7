package metrics

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// FitOLS fits ordinary least squares with an intercept column. rows is
// n x p; the returned coefficients are [intercept, b1..bp].
func FitOLS(rows [][]float64, y []float64) ([]float64, error) {
	n := len(rows)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("design matrix has %d rows for %d outcomes", n, len(y))
	}
	p := len(rows[0]) + 1
	if n < p {
		return nil, fmt.Errorf("underdetermined fit: %d rows for %d coefficients", n, p)
	}

	X := mat.NewDense(n, p, nil)
	for i, row := range rows {
		X.Set(i, 0, 1.0)
		for j, v := range row {
			X.Set(i, j+1, v)
		}
	}
	Y := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(X)

	beta := mat.NewVecDense(p, nil)
	if err := qr.SolveVecTo(beta, false, Y); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}

	out := make([]float64, p)
	for j := 0; j < p; j++ {
		out[j] = beta.AtVec(j)
	}
	return out, nil
}

// PredictOLS applies fitted coefficients to one row.
func PredictOLS(coeffs []float64, row []float64) float64 {
	v := coeffs[0]
	for j, x := range row {
		v += coeffs[j+1] * x
	}
	return v
}

// AssignFolds deterministically assigns n rows to k folds from an
// explicit seed: a seeded shuffle dealt round-robin, so fold sizes differ
// by at most one. Identical (n, k, seed) always yields the identical
// assignment, which is what makes detection and validation reproducible.
func AssignFolds(n, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	folds := make([]int, n)
	for dealt, idx := range perm {
		folds[idx] = dealt % k
	}
	return folds
}

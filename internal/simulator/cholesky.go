package simulator

import (
	"math"

	"RiskRadar/internal/model"
)

// choleskyPSD factors a symmetric matrix as Σ = LLᵀ with L lower
// triangular, tolerating positive semi-definite input: a pivot within
// tolerance of zero produces a zero row in L, so a zero-variance cash
// asset contributes exactly zero shock to every path. A pivot below
// -tol·max(diag) means the matrix is not PSD and the factorization
// fails with NonPositiveSemiDefiniteError; there is no silent
// projection to a nearby matrix.
func choleskyPSD(sigma [][]float64) ([][]float64, error) {
	n := len(sigma)
	maxDiag := 0.0
	for i := 0; i < n; i++ {
		if len(sigma[i]) != n {
			return nil, &model.InvalidParameterError{Name: "covariance", Reason: "matrix is not square"}
		}
		if math.IsNaN(sigma[i][i]) {
			return nil, &model.InvalidParameterError{Name: "covariance", Reason: "NaN on diagonal"}
		}
		if sigma[i][i] > maxDiag {
			maxDiag = sigma[i][i]
		}
	}
	tol := 1e-10 * maxDiag
	if tol == 0 {
		tol = 1e-18
	}

	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}

	for j := 0; j < n; j++ {
		d := sigma[j][j]
		for k := 0; k < j; k++ {
			d -= l[j][k] * l[j][k]
		}
		switch {
		case d < -tol:
			return nil, &model.NonPositiveSemiDefiniteError{Row: j, Pivot: d}
		case d <= tol:
			// Semi-definite direction: zero pivot, zero column.
			continue
		}
		l[j][j] = math.Sqrt(d)
		for i := j + 1; i < n; i++ {
			s := sigma[i][j]
			for k := 0; k < j; k++ {
				s -= l[i][k] * l[j][k]
			}
			l[i][j] = s / l[j][j]
		}
	}
	return l, nil
}

package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// Failure classes of the DOP engine. All are recoverable: a failed
// computation for one observer/instant is excluded from batch results
// rather than aborting the batch.
var (
	// ErrInsufficientGeometry: fewer than four satellites above the mask.
	ErrInsufficientGeometry = errors.New("insufficient geometry")
	// ErrIllConditioned: the normal matrix is too close to singular for
	// its inverse to mean anything.
	ErrIllConditioned = errors.New("ill-conditioned geometry")
	// ErrInvalidCovariance: inversion produced a non-positive-definite
	// covariance or the DOP consistency invariant failed.
	ErrInvalidCovariance = errors.New("invalid covariance")
)

// Numerical stability gates. Geometries beyond these are rejected outright:
// a DOP number from a near-degenerate inversion is worse than no number.
const (
	maxConditionNumber = 1e10
	minDeterminant     = 1e-10
	dopConsistencyEps  = 0.001
)

// GeometryMatrix is the design matrix of the position solution: one row per
// visible satellite, columns [east, north, up, 1]. Row order follows the
// insertion order of visible observations.
type GeometryMatrix [][4]float64

// QualityBand maps GDOP values below MaxGDOP to a tier.
type QualityBand struct {
	Tier    model.QualityTier
	MaxGDOP float64
}

// DOPThresholds is an ascending threshold table mapping GDOP to a quality
// tier. The table is ordinary configuration: substitute a different one to
// change the grading.
type DOPThresholds []QualityBand

// DefaultDOPThresholds returns the standard grading table.
func DefaultDOPThresholds() DOPThresholds {
	return DOPThresholds{
		{Tier: model.QualityExcellent, MaxGDOP: 2},
		{Tier: model.QualityGood, MaxGDOP: 4},
		{Tier: model.QualityModerate, MaxGDOP: 6},
		{Tier: model.QualityFair, MaxGDOP: 8},
	}
}

// Classify returns the tier for a GDOP value, falling through to Poor when
// no band matches.
func (t DOPThresholds) Classify(gdop float64) model.QualityTier {
	for _, band := range t {
		if gdop < band.MaxGDOP {
			return band.Tier
		}
	}
	return model.QualityPoor
}

// BuildGeometryMatrix filters observations by the elevation mask (strict
// inequality: a satellite exactly at the mask is excluded) and computes
// direction-cosine rows from azimuth and elevation.
func BuildGeometryMatrix(observations []model.Observation, maskDeg float64) GeometryMatrix {
	matrix := make(GeometryMatrix, 0, len(observations))
	for _, obs := range observations {
		if obs.ElevationDeg <= maskDeg {
			continue
		}
		az := obs.AzimuthDeg * degToRad
		el := obs.ElevationDeg * degToRad

		east := -math.Sin(az) * math.Cos(el)
		north := math.Cos(az) * math.Cos(el)
		up := math.Sin(el)

		matrix = append(matrix, [4]float64{east, north, up, 1})
	}
	return matrix
}

// ComputeDOP derives the dilution-of-precision family from a batch of
// topocentric observations. A nil thresholds table uses the default grading.
//
// The computation fails (never silently degrades) when fewer than four
// satellites clear the mask, when the normal matrix is near-singular or
// ill-conditioned, when the covariance diagonal is not strictly positive,
// or when the derived values violate GDOP² = PDOP² + TDOP² /
// PDOP² = HDOP² + VDOP² beyond tolerance.
func ComputeDOP(observations []model.Observation, maskDeg float64, thresholds DOPThresholds) (model.DOPResult, error) {
	if thresholds == nil {
		thresholds = DefaultDOPThresholds()
	}

	matrix := BuildGeometryMatrix(observations, maskDeg)
	if len(matrix) < 4 {
		return model.DOPResult{}, fmt.Errorf("%w: %d visible satellites, need 4", ErrInsufficientGeometry, len(matrix))
	}

	normal := normalMatrix(matrix)

	det := det4(normal)
	if math.Abs(det) < minDeterminant {
		return model.DOPResult{}, fmt.Errorf("%w: determinant %.3e", ErrIllConditioned, det)
	}

	cov := invert4(normal, det)

	// 1-norm condition estimate; for this 4x4 normal matrix it tracks the
	// 2-norm condition number closely enough for a coarse rejection gate.
	cond := norm1(normal) * norm1(cov)
	if cond > maxConditionNumber {
		return model.DOPResult{}, fmt.Errorf("%w: condition number %.3e", ErrIllConditioned, cond)
	}

	for i := 0; i < 4; i++ {
		if cov[i][i] <= 0 {
			return model.DOPResult{}, fmt.Errorf("%w: covariance diagonal %d is %.3e", ErrInvalidCovariance, i, cov[i][i])
		}
	}

	result := model.DOPResult{
		GDOP:         math.Sqrt(cov[0][0] + cov[1][1] + cov[2][2] + cov[3][3]),
		PDOP:         math.Sqrt(cov[0][0] + cov[1][1] + cov[2][2]),
		HDOP:         math.Sqrt(cov[0][0] + cov[1][1]),
		VDOP:         math.Sqrt(cov[2][2]),
		TDOP:         math.Sqrt(cov[3][3]),
		VisibleCount: len(matrix),
	}

	if math.Abs(result.GDOP*result.GDOP-(result.PDOP*result.PDOP+result.TDOP*result.TDOP)) > dopConsistencyEps ||
		math.Abs(result.PDOP*result.PDOP-(result.HDOP*result.HDOP+result.VDOP*result.VDOP)) > dopConsistencyEps {
		return model.DOPResult{}, fmt.Errorf("%w: DOP consistency invariant violated", ErrInvalidCovariance)
	}

	result.Quality = thresholds.Classify(result.GDOP)
	return result, nil
}

// normalMatrix forms N = AᵀA for the n×4 geometry matrix.
func normalMatrix(a GeometryMatrix) [4][4]float64 {
	var n [4][4]float64
	for _, row := range a {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				n[i][j] += row[i] * row[j]
			}
		}
	}
	return n
}

// det4 computes the determinant by cofactor expansion along the first row.
func det4(m [4][4]float64) float64 {
	det := 0.0
	for c := 0; c < 4; c++ {
		minor := minor3(m, 0, c)
		term := m[0][c] * det3(minor)
		if c%2 == 1 {
			term = -term
		}
		det += term
	}
	return det
}

// invert4 returns the inverse via the adjugate. The closed-form path keeps
// repeated invocations bit-identical for identical inputs.
func invert4(m [4][4]float64, det float64) [4][4]float64 {
	var inv [4][4]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			cofactor := det3(minor3(m, r, c))
			if (r+c)%2 == 1 {
				cofactor = -cofactor
			}
			// Adjugate is the transposed cofactor matrix.
			inv[c][r] = cofactor / det
		}
	}
	return inv
}

func minor3(m [4][4]float64, row, col int) [3][3]float64 {
	var out [3][3]float64
	ri := 0
	for r := 0; r < 4; r++ {
		if r == row {
			continue
		}
		ci := 0
		for c := 0; c < 4; c++ {
			if c == col {
				continue
			}
			out[ri][ci] = m[r][c]
			ci++
		}
		ri++
	}
	return out
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// norm1 is the maximum absolute column sum.
func norm1(m [4][4]float64) float64 {
	maxSum := 0.0
	for c := 0; c < 4; c++ {
		sum := 0.0
		for r := 0; r < 4; r++ {
			sum += math.Abs(m[r][c])
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	return maxSum
}

package cmat

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// independenceTolerance rejects a recovered eigenvector whose component
// orthogonal to the already-selected set is below this fraction of its norm.
const independenceTolerance = 1e-8

// Eigen computes the eigenvalues and right eigenvectors of a general
// complex n-by-n matrix. Column j of the returned matrix is the
// eigenvector for values[j]. No ordering of the eigenvalues is implied;
// callers needing a particular branch or sign convention must normalize
// the output themselves.
//
// The decomposition runs through gonum's real nonsymmetric eigensolver on
// the real embedding
//
//	M = [[X, -Y], [Y, X]],  A = X + iY,
//
// whose spectrum is the union of spec(A) and its conjugate. An embedded
// eigenvector (u; v) with eigenvalue q yields the candidate w = u + i*v,
// which is an eigenvector of A when nonzero and vanishes identically for
// the conjugate ghost spectrum. The n candidates kept are the most
// independent ones by modified Gram-Schmidt screening, which also handles
// the duplicated spectrum of a real-valued A and degenerate eigenspaces.
//
// Returns ErrEigenFailed when the underlying solver does not converge or
// when fewer than n independent eigenvectors are recovered.
// Complexity: O(n^3) time, O(n^2) memory.
//
// Sensitivity note for adjoint implementations: the derivative of an
// eigenpair with respect to the matrix entries follows the perturbation
// series dq_j = l_j^H dA r_j / (l_j^H r_j) with eigenvector terms weighted
// by 1/(q_j - q_k). Near-degenerate pairs make those weights blow up; a
// stable rule replaces 1/(q_j - q_k) with the Lorentzian-broadened form
// (q_j - q_k)^* / (|q_j - q_k|^2 + eps^2), which damps the singular
// contributions instead of amplifying noise.
func Eigen(a *Matrix) (values []complex128, vectors *Matrix, err error) {
	if a.rows != a.cols {
		panic(fmt.Sprintf("cmat: Eigen requires a square matrix, got %dx%d", a.rows, a.cols))
	}
	n := a.rows

	// Stage 1: build the 2n-by-2n real embedding.
	embedded := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := real(a.data[i*a.cols+j])
			y := imag(a.data[i*a.cols+j])
			embedded.Set(i, j, x)
			embedded.Set(i, n+j, -y)
			embedded.Set(n+i, j, y)
			embedded.Set(n+i, n+j, x)
		}
	}

	// Stage 2: real nonsymmetric eigendecomposition (external primitive).
	var eig mat.Eigen
	if ok := eig.Factorize(embedded, mat.EigenRight); !ok {
		return nil, nil, fmt.Errorf("cmat: Eigen: order %d embedding did not converge: %w", n, ErrEigenFailed)
	}
	embeddedValues := eig.Values(nil)
	var embeddedVectors mat.CDense
	eig.VectorsTo(&embeddedVectors)

	// Stage 3: recover candidates w = u + i*v and rank them by how much of
	// each embedded eigenvector survives the recovery. Ghost-spectrum
	// columns collapse to (numerically) zero.
	type candidate struct {
		value  complex128
		vector []complex128
		weight float64
	}
	candidates := make([]candidate, 0, 2*n)
	for j := 0; j < 2*n; j++ {
		w := make([]complex128, n)
		var wnorm, colnorm float64
		for i := 0; i < n; i++ {
			u := embeddedVectors.At(i, j)
			v := embeddedVectors.At(n+i, j)
			w[i] = u + 1i*v
			wnorm += real(w[i])*real(w[i]) + imag(w[i])*imag(w[i])
			colnorm += real(u)*real(u) + imag(u)*imag(u) + real(v)*real(v) + imag(v)*imag(v)
		}
		if colnorm == 0 {
			continue
		}
		candidates = append(candidates, candidate{
			value:  embeddedValues[j],
			vector: w,
			weight: math.Sqrt(wnorm / colnorm),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].weight > candidates[j].weight })

	// Stage 4: greedy selection with modified Gram-Schmidt independence
	// screening against the normalized span of everything kept so far.
	values = make([]complex128, 0, n)
	kept := make([][]complex128, 0, n)
	columns := make([][]complex128, 0, n)
	for _, cand := range candidates {
		if len(values) == n {
			break
		}
		residual := append([]complex128(nil), cand.vector...)
		normalize(residual)
		for _, basis := range kept {
			proj := dotc(basis, residual)
			for i := range residual {
				residual[i] -= proj * basis[i]
			}
		}
		if norm(residual) < independenceTolerance {
			continue
		}
		normalize(residual)
		kept = append(kept, residual)
		normalized := append([]complex128(nil), cand.vector...)
		normalize(normalized)
		columns = append(columns, normalized)
		values = append(values, cand.value)
	}
	if len(values) != n {
		return nil, nil, fmt.Errorf("cmat: Eigen: recovered %d of %d independent eigenvectors: %w", len(values), n, ErrEigenFailed)
	}

	vectors = New(n, n)
	for j, col := range columns {
		for i := 0; i < n; i++ {
			vectors.data[i*n+j] = col[i]
		}
	}
	return values, vectors, nil
}

func dotc(a, b []complex128) complex128 {
	var acc complex128
	for i := range a {
		acc += cmplx.Conj(a[i]) * b[i]
	}
	return acc
}

func norm(v []complex128) float64 {
	var acc float64
	for _, x := range v {
		acc += real(x)*real(x) + imag(x)*imag(x)
	}
	return math.Sqrt(acc)
}

func normalize(v []complex128) {
	n := norm(v)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] /= complex(n, 0)
	}
}

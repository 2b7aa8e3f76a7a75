package layer

import "fmt"

// Medium holds one scalar material quantity sampled on the unit-cell grid,
// as a flat row-major slice of shape (NX, NY). A 1x1 grid denotes a
// laterally uniform quantity.
type Medium struct {
	Grid   []complex128
	NX, NY int
}

// Uniform returns a Medium holding a single laterally uniform value.
func Uniform(v complex128) Medium {
	return Medium{Grid: []complex128{v}, NX: 1, NY: 1}
}

// IsUniform reports whether the medium is laterally uniform.
func (m Medium) IsUniform() bool { return m.NX == 1 && m.NY == 1 }

func (m Medium) validate() {
	if len(m.Grid) != m.NX*m.NY || m.NX < 1 || m.NY < 1 {
		panic(fmt.Sprintf("layer: medium grid length %d does not match shape (%d, %d)", len(m.Grid), m.NX, m.NY))
	}
}

// Tensor holds the components of an in-plane material tensor together with
// its zz component. Couplings between the z axis and the transverse plane
// are outside the formulation and have no place in the type.
type Tensor struct {
	XX, XY, YX, YY, ZZ Medium
}

// UniformTensor returns the tensor of a uniform isotropic quantity.
func UniformTensor(v complex128) Tensor {
	return Tensor{
		XX: Uniform(v),
		XY: Uniform(0),
		YX: Uniform(0),
		YY: Uniform(v),
		ZZ: Uniform(v),
	}
}

// validate checks the component grids. Uniform components combine freely
// with patterned ones; all patterned components must share one shape.
func (t Tensor) validate() error {
	components := []Medium{t.XX, t.XY, t.YX, t.YY, t.ZZ}
	var ref Medium
	for _, c := range components {
		c.validate()
		if c.IsUniform() {
			continue
		}
		if ref.Grid == nil {
			ref = c
			continue
		}
		if c.NX != ref.NX || c.NY != ref.NY {
			return fmt.Errorf("%w: (%d, %d) vs (%d, %d)", ErrShapeMismatch, c.NX, c.NY, ref.NX, ref.NY)
		}
	}
	return nil
}

package math3d

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major matrix of float64 with fixed dimensions.
// Storage and multiplication are delegated to gonum.
type Matrix struct {
	d *mat.Dense
}

// NewMatrix returns a rows×cols matrix filled with zeros.
// It panics if either dimension is not positive.
func NewMatrix(rows, cols int) Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("math3d: invalid matrix dimensions %dx%d", rows, cols))
	}
	return Matrix{d: mat.NewDense(rows, cols, nil)}
}

// MatrixFromRows builds a matrix from row slices of equal length.
func MatrixFromRows(rows ...[]float64) Matrix {
	if len(rows) == 0 {
		panic("math3d: matrix needs at least one row")
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != len(rows[0]) {
			panic(fmt.Sprintf("math3d: ragged row %d: %d != %d", i, len(r), len(rows[0])))
		}
		for j, v := range r {
			m.d.Set(i, j, v)
		}
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := range n {
		m.d.Set(i, i, 1)
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	r, _ := m.d.Dims()
	return r
}

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	_, c := m.d.Dims()
	return c
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.d.At(i, j)
}

// Set stores v at row i, column j.
func (m Matrix) Set(i, j int, v float64) {
	m.d.Set(i, j, v)
}

// Mul returns the product m × o. It panics if the column count of m differs
// from the row count of o.
func (m Matrix) Mul(o Matrix) Matrix {
	if m.Cols() != o.Rows() {
		panic(fmt.Sprintf("math3d: cannot multiply %dx%d by %dx%d",
			m.Rows(), m.Cols(), o.Rows(), o.Cols()))
	}
	var out mat.Dense
	out.Mul(m.d, o.d)
	return Matrix{d: &out}
}

// Transpose returns a new matrix with rows and columns swapped.
func (m Matrix) Transpose() Matrix {
	return Matrix{d: mat.DenseCopyOf(m.d.T())}
}

// Equal reports whether both matrices have the same shape and all elements
// are within tol of each other.
func (m Matrix) Equal(o Matrix, tol float64) bool {
	if m.Rows() != o.Rows() || m.Cols() != o.Cols() {
		return false
	}
	return mat.EqualApprox(m.d, o.d, tol)
}

// String formats the matrix one row per line.
func (m Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.d))
}

// Homogeneous lifts v to the 4×1 column (x, y, z, 1).
func Homogeneous(v Vec3f) Matrix {
	return Matrix{d: mat.NewDense(4, 1, []float64{v.X, v.Y, v.Z, 1})}
}

// Vec3 performs the perspective divide on a 4×1 column, returning
// (m0/m3, m1/m3, m2/m3). It panics on any other shape.
func (m Matrix) Vec3() Vec3f {
	if m.Rows() != 4 || m.Cols() != 1 {
		panic(fmt.Sprintf("math3d: perspective divide needs 4x1, got %dx%d", m.Rows(), m.Cols()))
	}
	w := m.d.At(3, 0)
	return Vec3f{m.d.At(0, 0) / w, m.d.At(1, 0) / w, m.d.At(2, 0) / w}
}

// Transform applies m to the point v in homogeneous coordinates and divides
// by w.
func (m Matrix) Transform(v Vec3f) Vec3f {
	return m.Mul(Homogeneous(v)).Vec3()
}

// LookAt builds the model-view matrix for a camera at eye looking toward
// center with the given up direction. The basis is
//
//	z = normalize(eye - center)
//	x = normalize(up × z)
//	y = z × x
//
// placed in rows 0..2, with the last column holding -center.
func LookAt(eye, center, up Vec3f) Matrix {
	z := Normalize(eye.Sub(center))
	x := Normalize(up.Cross(z))
	y := z.Cross(x)

	m := Identity(4)
	basis := [3]Vec3f{x, y, z}
	c := [3]float64{center.X, center.Y, center.Z}
	for i, b := range basis {
		m.Set(i, 0, b.X)
		m.Set(i, 1, b.Y)
		m.Set(i, 2, b.Z)
		m.Set(i, 3, -c[i])
	}
	return m
}

// DepthRange is the depth span the viewport maps [-1, 1] onto.
const DepthRange = 255.0

// Viewport maps the normalized cube [-1,1]^3 onto the screen rectangle at
// (x, y) of size w×h and depth [0, DepthRange].
func Viewport(x, y, w, h int) Matrix {
	m := Identity(4)
	m.Set(0, 3, float64(x)+float64(w)/2)
	m.Set(1, 3, float64(y)+float64(h)/2)
	m.Set(2, 3, DepthRange/2)

	m.Set(0, 0, float64(w)/2)
	m.Set(1, 1, float64(h)/2)
	m.Set(2, 2, DepthRange/2)
	return m
}

// Projection returns the simple perspective matrix for a camera at distance
// c on the z axis: identity with element [3][2] = -1/c.
func Projection(c float64) Matrix {
	m := Identity(4)
	m.Set(3, 2, -1/c)
	return m
}

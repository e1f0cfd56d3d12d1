package core

// Mat3 is a row-major 3x3 matrix
type Mat3 [3][3]float64

// Mat3FromCols builds a matrix whose columns are u, v and w
func Mat3FromCols(u, v, w Vec3) Mat3 {
	return Mat3{
		{u.X, v.X, w.X},
		{u.Y, v.Y, w.Y},
		{u.Z, v.Z, w.Z},
	}
}

// MulVec returns the matrix-vector product m·x
func (m Mat3) MulVec(x Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*x.X + m[0][1]*x.Y + m[0][2]*x.Z,
		Y: m[1][0]*x.X + m[1][1]*x.Y + m[1][2]*x.Z,
		Z: m[2][0]*x.X + m[2][1]*x.Y + m[2][2]*x.Z,
	}
}

// minor returns the determinant of the 2x2 matrix left after deleting row i and column j
func (m Mat3) minor(i, j int) float64 {
	var sub [4]float64
	n := 0
	for r := 0; r < 3; r++ {
		if r == i {
			continue
		}
		for c := 0; c < 3; c++ {
			if c == j {
				continue
			}
			sub[n] = m[r][c]
			n++
		}
	}
	return sub[0]*sub[3] - sub[1]*sub[2]
}

// cofactor returns the signed minor C_ij
func (m Mat3) cofactor(i, j int) float64 {
	if (i+j)%2 == 1 {
		return -m.minor(i, j)
	}
	return m.minor(i, j)
}

// Determinant expands along the first row
func (m Mat3) Determinant() float64 {
	return m[0][0]*m.cofactor(0, 0) + m[0][1]*m.cofactor(0, 1) + m[0][2]*m.cofactor(0, 2)
}

// Inverse returns the inverse via the adjugate (transposed cofactor matrix).
// ok is false when the determinant is exactly zero.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if det == 0 {
		return Mat3{}, false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv[j][i] = m.cofactor(i, j) / det
		}
	}
	return inv, true
}

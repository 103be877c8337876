package math

// ------------------------------------------
// Matrix 4x4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Creates a matrix from four rows.
 */
func NewMat4FromRows(rows [4][4]float32) Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out_matrix.Data[row*4+col] = rows[row][col]
		}
	}
	return out_matrix
}

/**
 * @brief Returns the cell at (row, col). Indices are not checked: anything
 * outside [0, 3] is a programming error and panics.
 */
func (mt Mat4) At(row, col int) float32 {
	return mt.Data[row*4+col]
}

/**
 * @brief Writes value into the cell at (row, col) and returns the matrix.
 * Indices are not checked, see At.
 */
func (mt *Mat4) Set(row, col int, value float32) *Mat4 {
	mt.Data[row*4+col] = value
	return mt
}

/**
 * @brief Returns the result of multiplying mt and other. mt is the left operand.
 *
 * @param other The right operand.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

/**
 * @brief Sets mt to mt × other and returns mt.
 */
func (mt *Mat4) MulInPlace(other Mat4) *Mat4 {
	*mt = mt.Mul(other)
	return mt
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func (mt Mat4) Transposed() Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out_matrix.Data[col*4+row] = mt.Data[row*4+col]
		}
	}
	return out_matrix
}

/**
 * @brief Multiplies the column vector v by mt.
 */
func (mt Mat4) Transform(v Vec4) Vec4 {
	d := &mt.Data
	return Vec4{
		d[0]*v.X + d[1]*v.Y + d[2]*v.Z + d[3]*v.W,
		d[4]*v.X + d[5]*v.Y + d[6]*v.Z + d[7]*v.W,
		d[8]*v.X + d[9]*v.Y + d[10]*v.Z + d[11]*v.W,
		d[12]*v.X + d[13]*v.Y + d[14]*v.Z + d[15]*v.W,
	}
}

/**
 * @brief Returns the 16 cells in row-major order, ready for upload.
 */
func (mt Mat4) Flatten() [16]float32 {
	return mt.Data
}

/**
 * @brief Returns the 16 cells in column-major order, for graphics APIs that
 * expect it and do not transpose on upload.
 */
func (mt Mat4) ColumnMajor() [16]float32 {
	return mt.Transposed().Data
}

/**
 * @brief Compares every cell of mt and other against tolerance.
 */
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 *
 * @param position The position to be used to create the matrix.
 * @return A newly created translation matrix.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[3] = position.X
	out_matrix.Data[7] = position.Y
	out_matrix.Data[11] = position.Z
	return out_matrix
}

/**
 * @brief Returns a scale matrix using the provided scale.
 *
 * @param scale The 3-component scale.
 * @return A scale matrix.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

/**
 * @brief Creates a rotation matrix about the x axis.
 *
 * @param angle The angle in degrees.
 * @return A rotation matrix.
 */
func NewMat4RotationX(angle float32) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(DegToRad(angle))
	s := ksin(DegToRad(angle))

	out_matrix.Data[5] = c
	out_matrix.Data[6] = -s
	out_matrix.Data[9] = s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix about the y axis.
 *
 * @param angle The angle in degrees.
 * @return A rotation matrix.
 */
func NewMat4RotationY(angle float32) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(DegToRad(angle))
	s := ksin(DegToRad(angle))

	out_matrix.Data[0] = c
	out_matrix.Data[2] = s
	out_matrix.Data[8] = -s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix about the z axis.
 *
 * @param angle The angle in degrees.
 * @return A rotation matrix.
 */
func NewMat4RotationZ(angle float32) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(DegToRad(angle))
	s := ksin(DegToRad(angle))

	out_matrix.Data[0] = c
	out_matrix.Data[1] = -s
	out_matrix.Data[4] = s
	out_matrix.Data[5] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from Euler angles in degrees. X is applied
 * first, then Y, then Z: the result is Rz × (Ry × Rx).
 */
func NewMat4RotationEuler(x, y, z float32) Mat4 {
	rx := NewMat4RotationX(x)
	ry := NewMat4RotationY(y)
	rz := NewMat4RotationZ(z)
	return rz.Mul(ry.Mul(rx))
}

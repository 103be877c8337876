package math

/**
 * @brief Creates a quaternion from its vector part (x, y, z) and scalar part w.
 */
func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x: x, y: y, z: z, w: w}
}

/**
 * @brief Creates an identity quaternion.
 *
 * @return An identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{w: 1.0}
}

/**
 * @brief Creates a quaternion from the given axis and angle.
 * The result is a unit quaternion as long as axis is unit length.
 *
 * @param axis The axis of rotation.
 * @param angle The angle of rotation in degrees.
 * @return A new quaternion.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32) Quaternion {
	halfAngle := DegToRad(angle) * 0.5
	s := ksin(halfAngle)
	c := kcos(halfAngle)
	return Quaternion{
		x: axis.X * s,
		y: axis.Y * s,
		z: axis.Z * s,
		w: c}
}

func (q Quaternion) X() float32 { return q.x }
func (q Quaternion) Y() float32 { return q.y }
func (q Quaternion) Z() float32 { return q.z }
func (q Quaternion) W() float32 { return q.w }

func (q *Quaternion) SetX(x float32) *Quaternion {
	q.x = x
	q.hasLength = false
	return q
}

func (q *Quaternion) SetY(y float32) *Quaternion {
	q.y = y
	q.hasLength = false
	return q
}

func (q *Quaternion) SetZ(z float32) *Quaternion {
	q.z = z
	q.hasLength = false
	return q
}

func (q *Quaternion) SetW(w float32) *Quaternion {
	q.w = w
	q.hasLength = false
	return q
}

/**
 * @brief Returns the magnitude of the quaternion. The value is computed on first
 * use and cached until a component changes.
 */
func (q *Quaternion) Length() float32 {
	if !q.hasLength {
		q.length = ksqrt(q.x*q.x + q.y*q.y + q.z*q.z + q.w*q.w)
		q.hasLength = true
	}
	return q.length
}

/**
 * @brief Normalizes the quaternion in place.
 *
 * @return ErrDivisionByZero if the magnitude is 0; the quaternion is left untouched.
 */
func (q *Quaternion) Normalize() error {
	length := q.Length()
	if length == 0 {
		return ErrDivisionByZero
	}
	q.x /= length
	q.y /= length
	q.z /= length
	q.w /= length
	q.hasLength = false
	return nil
}

/**
 * @brief Returns a normalized copy of the provided quaternion.
 */
func (q Quaternion) Normalized() (Quaternion, error) {
	err := q.Normalize()
	return q, err
}

/**
 * @brief Returns the conjugate of the provided quaternion. That is,
 * The x, y and z elements are negated, but the w element is untouched.
 */
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{x: -q.x, y: -q.y, z: -q.z, w: q.w}
}

/**
 * @brief Returns the Hamilton product q · other.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		x: q.x*other.w + q.w*other.x + q.y*other.z - q.z*other.y,
		y: q.y*other.w + q.w*other.y + q.z*other.x - q.x*other.z,
		z: q.z*other.w + q.w*other.z + q.x*other.y - q.y*other.x,
		w: q.w*other.w - q.x*other.x - q.y*other.y - q.z*other.z,
	}
}

/**
 * @brief Returns q · (v, 0), treating v as a pure quaternion. This is the
 * first half of the sandwich product used to rotate vectors.
 */
func (q Quaternion) MulVec3(v Vec3) Quaternion {
	return Quaternion{
		x: q.w*v.X + q.y*v.Z - q.z*v.Y,
		y: q.w*v.Y + q.z*v.X - q.x*v.Z,
		z: q.w*v.Z + q.x*v.Y - q.y*v.X,
		w: -q.x*v.X - q.y*v.Y - q.z*v.Z,
	}
}

/**
 * @brief Returns the vector part of the quaternion.
 */
func (q Quaternion) Vec3() Vec3 {
	return Vec3{q.x, q.y, q.z}
}

/**
 * @brief Calculates the dot product of the provided quaternions.
 */
func (q Quaternion) Dot(other Quaternion) float32 {
	return q.x*other.x +
		q.y*other.y +
		q.z*other.z +
		q.w*other.w
}

/**
 * @brief Creates a rotation matrix from the given quaternion, for column vectors.
 * The quaternion is normalized first; a zero quaternion yields the identity.
 *
 * @return A rotation matrix.
 */
func (q Quaternion) ToMat4() Mat4 {
	out_matrix := NewMat4Identity()

	n, err := q.Normalized()
	if err != nil {
		return out_matrix
	}

	out_matrix.Data[0] = 1.0 - 2.0*n.y*n.y - 2.0*n.z*n.z
	out_matrix.Data[1] = 2.0*n.x*n.y - 2.0*n.z*n.w
	out_matrix.Data[2] = 2.0*n.x*n.z + 2.0*n.y*n.w

	out_matrix.Data[4] = 2.0*n.x*n.y + 2.0*n.z*n.w
	out_matrix.Data[5] = 1.0 - 2.0*n.x*n.x - 2.0*n.z*n.z
	out_matrix.Data[6] = 2.0*n.y*n.z - 2.0*n.x*n.w

	out_matrix.Data[8] = 2.0*n.x*n.z - 2.0*n.y*n.w
	out_matrix.Data[9] = 2.0*n.y*n.z + 2.0*n.x*n.w
	out_matrix.Data[10] = 1.0 - 2.0*n.x*n.x - 2.0*n.y*n.y

	return out_matrix
}

package math

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Returns a new vec3 containing the x, y and z components of the
 * supplied vec4, essentially dropping the w component.
 */
func NewVec3FromVec4(vector Vec4) Vec3 {
	return Vec3{vector.X, vector.Y, vector.Z}
}

/**
 * @brief Returns a new vec4 using vector as the x, y and z components and w for w.
 */
func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 1.0f.
 */
func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing up (0, 1, 0).
 */
func NewVec3Up() Vec3 {
	return Vec3{0.0, 1.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing down (0, -1, 0).
 */
func NewVec3Down() Vec3 {
	return Vec3{0.0, -1.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing left (-1, 0, 0).
 */
func NewVec3Left() Vec3 {
	return Vec3{-1.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing right (1, 0, 0).
 */
func NewVec3Right() Vec3 {
	return Vec3{1.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing forward (0, 0, 1).
 * The camera looks down +Z by default.
 */
func NewVec3Forward() Vec3 {
	return Vec3{0.0, 0.0, 1.0}
}

/**
 * @brief Creates and returns a 3-component vector pointing backward (0, 0, -1).
 */
func NewVec3Back() Vec3 {
	return Vec3{0.0, 0.0, -1.0}
}

/**
 * @brief Adds other to v and returns a copy of the result.
 */
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

/**
 * @brief Multiplies v by other component-wise and returns a copy of the result.
 */
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{
		v.X * other.X,
		v.Y * other.Y,
		v.Z * other.Z}
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 */
func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

/**
 * @brief Divides v by other component-wise and returns a copy of the result.
 *
 * @param other The divisor.
 * @return The resulting vector, or ErrDivisionByZero if any component of other is 0.
 */
func (v Vec3) Div(other Vec3) (Vec3, error) {
	if other.X == 0 || other.Y == 0 || other.Z == 0 {
		return v, ErrDivisionByZero
	}
	return Vec3{
		v.X / other.X,
		v.Y / other.Y,
		v.Z / other.Z}, nil
}

/**
 * @brief Returns a copy of v with every component negated.
 */
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/**
 * @brief Returns the Euclidean length of the provided vector.
 */
func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of the supplied vector.
 *
 * @return A unit-length copy, or ErrDivisionByZero if the length is 0.
 */
func (v Vec3) Normalize() (Vec3, error) {
	length := v.Length()
	if length == 0 {
		return v, ErrDivisionByZero
	}
	return Vec3{
		v.X / length,
		v.Y / length,
		v.Z / length}, nil
}

/**
 * @brief Returns the dot product between the provided vectors. Typically used
 * to calculate the difference in direction.
 */
func (v Vec3) Dot(other Vec3) float32 {
	p := float32(0)
	p += v.X * other.X
	p += v.Y * other.Y
	p += v.Z * other.Z
	return p
}

/**
 * @brief Calculates and returns the cross product v × other.
 * The cross product is a new vector which is orthogonal to both provided vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Rotates v by angle degrees about axis and returns the result.
 * The rotation is the quaternion sandwich q · v · q⁻¹ where q is built from
 * the half angle. axis must be unit length.
 *
 * @param angle The angle of rotation in degrees.
 * @param axis The unit axis to rotate about.
 * @return The rotated copy of v.
 */
func (v Vec3) Rotate(angle float32, axis Vec3) Vec3 {
	rotation := NewQuatFromAxisAngle(axis, angle)
	conjugate := rotation.Conjugate()
	result := rotation.MulVec3(v).Mul(conjugate)
	return result.Vec3()
}

/**
 * @brief Rotates v by angle degrees in the XY plane, about +Z. The z component
 * is left untouched.
 */
func (v Vec3) Rotate2D(angle float32) Vec3 {
	rad := DegToRad(angle)
	c := kcos(rad)
	s := ksin(rad)
	return Vec3{
		c*v.X - s*v.Y,
		s*v.X + c*v.Y,
		v.Z}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}

	if kabs(v.Y-other.Y) > tolerance {
		return false
	}

	if kabs(v.Z-other.Z) > tolerance {
		return false
	}

	return true
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

/**
 * @brief Transform v by m. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0f is there.
 */
func (v Vec3) Transform(m Mat4) Vec3 {
	return NewVec3FromVec4(m.Transform(v.ToVec4(1.0)))
}

// ------------------------------------------
// Vector 3, in place
// ------------------------------------------

// AddInPlace adds other to v and returns v.
func (v *Vec3) AddInPlace(other Vec3) *Vec3 {
	*v = v.Add(other)
	return v
}

// SubInPlace subtracts other from v and returns v.
func (v *Vec3) SubInPlace(other Vec3) *Vec3 {
	*v = v.Sub(other)
	return v
}

// MulInPlace multiplies v by other component-wise and returns v.
func (v *Vec3) MulInPlace(other Vec3) *Vec3 {
	*v = v.Mul(other)
	return v
}

// MulScalarInPlace scales v and returns v.
func (v *Vec3) MulScalarInPlace(scalar float32) *Vec3 {
	*v = v.MulScalar(scalar)
	return v
}

// DivInPlace divides v by other component-wise. v is left untouched on error.
func (v *Vec3) DivInPlace(other Vec3) (*Vec3, error) {
	out, err := v.Div(other)
	if err != nil {
		return v, err
	}
	*v = out
	return v, nil
}

// NormalizeInPlace scales v to unit length. v is left untouched on error.
func (v *Vec3) NormalizeInPlace() (*Vec3, error) {
	out, err := v.Normalize()
	if err != nil {
		return v, err
	}
	*v = out
	return v, nil
}

// CrossInPlace sets v to v × other and returns v.
func (v *Vec3) CrossInPlace(other Vec3) *Vec3 {
	*v = v.Cross(other)
	return v
}

// RotateInPlace rotates v by angle degrees about the unit axis and returns v.
func (v *Vec3) RotateInPlace(angle float32, axis Vec3) *Vec3 {
	*v = v.Rotate(angle, axis)
	return v
}

// Rotate2DInPlace rotates v by angle degrees about +Z and returns v.
func (v *Vec3) Rotate2DInPlace(angle float32) *Vec3 {
	*v = v.Rotate2D(angle)
	return v
}

// Set assigns all three components and returns v.
func (v *Vec3) Set(x, y, z float32) *Vec3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 */
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec4) Compare(other Vec4, tolerance float32) bool {
	return kabs(v.X-other.X) <= tolerance &&
		kabs(v.Y-other.Y) <= tolerance &&
		kabs(v.Z-other.Z) <= tolerance &&
		kabs(v.W-other.W) <= tolerance
}

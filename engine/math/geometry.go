package math

/**
 * @brief Runs a local-space point through an MVP matrix and the perspective divide.
 *
 * @param mvp The model-view-projection matrix.
 * @param point The point in object space.
 * @return The point in normalized device coordinates, and false when the
 * clip-space w is too close to zero to divide by.
 */
func ProjectPoint(mvp Mat4, point Vec3) (Vec3, bool) {
	clip := mvp.Transform(point.ToVec4(1.0))
	if kabs(clip.W) < K_FLOAT_EPSILON {
		return Vec3{}, false
	}
	return Vec3{
		clip.X / clip.W,
		clip.Y / clip.W,
		clip.Z / clip.W}, true
}

/**
 * @brief Maps normalized device coordinates to pixel coordinates of a
 * width x height viewport. y grows downwards on screen.
 */
func NDCToScreen(ndc Vec3, width, height float32) Vec2 {
	return Vec2{
		X: (ndc.X + 1) * 0.5 * width,
		Y: (1 - ndc.Y) * 0.5 * height,
	}
}

// Elevation returns the angle in degrees between direction and the XZ plane,
// positive above it. A zero direction has no elevation.
func Elevation(direction Vec3) float32 {
	length := direction.Length()
	if length == 0 {
		return 0
	}
	return RadToDeg(kasin(Clamp(direction.Y/length, -1, 1)))
}

package math

import "github.com/google/uuid"

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A quaternion, used to rotate vectors about an arbitrary axis.
 * x, y and z hold the vector part and w the scalar part. The fields are
 * unexported so every write goes through a setter, which keeps the cached
 * magnitude honest.
 */
type Quaternion struct {
	x, y, z, w float32

	/** @brief Lazily computed magnitude. Only meaningful while hasLength is set. */
	length    float32
	hasLength bool
}

/**
 * @brief a 4x4 matrix, stored row-major: the cell at (row, col) lives at
 * Data[row*4+col]. Points are column vectors, so translation sits in column 3
 * and the perspective divide in row 3.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the transform of a renderable object in the world.
 * The model matrix is always rebuilt from the current state, in the order
 * scale, then rotation, then translation.
 */
type Transform struct {
	/** @brief Unique identifier of the transform, used to match render packets to objects. */
	ID uuid.UUID
	/** @brief The position in the world. */
	Translation Vec3
	/** @brief Euler angles in degrees, composed as Rz × (Ry × Rx). */
	Rotation Vec3
	/** @brief The scale in the world. */
	Scale Vec3
}

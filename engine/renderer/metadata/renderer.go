package metadata

import (
	"github.com/google/uuid"
)

/**
 * @brief The matrices of one object for one frame, flattened row-major
 * ready to be handed to a backend.
 */
type ObjectMatrices struct {
	/** @brief The id of the transform these matrices were built from. */
	TransformID uuid.UUID
	/** @brief The object name from the scene. */
	Name string
	/** @brief translation × rotation × scale. */
	Model [16]float32
	/** @brief projection × view × model. */
	MVP [16]float32
	/** @brief The geometry to draw with MVP. */
	Geometry *Geometry
}

/**
 * @brief A structure which is generated by the application and sent once
 * to the renderer to render a given frame. Consists of all data required,
 * such as delta time and the matrices of every object.
 */
type RenderPacket struct {
	/** @brief The number of the frame, starting at 1. */
	FrameNumber uint64
	/** @brief The time in seconds since the last frame. */
	DeltaTime float64
	/** @brief The viewport width in pixels. */
	Width uint32
	/** @brief The viewport height in pixels. */
	Height uint32
	/** @brief viewRotation × viewTranslation, row-major. */
	View [16]float32
	/** @brief The projection matrix, row-major. */
	Projection [16]float32
	/** @brief One entry per object, in scene order. */
	Objects []ObjectMatrices
}

package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Files the engine does not load. */
	ResourceTypeNone ResourceType = iota
	/** @brief Scene description (camera and objects). */
	ResourceTypeScene
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeScene:
		return "scene"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The resource data. */
	Data interface{}
}

package metadata

import "context"

/** @brief The work of a job. Returning an error cancels the jobs dispatched with it. */
type JobStart func(ctx context.Context) error

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	/** @brief A name used when logging failures. */
	Name string
	/** @brief A function to be invoked when the job starts. Required. */
	OnStart JobStart
	/** @brief Invoked after OnStart succeeded. Optional. */
	OnComplete func()
	/** @brief Invoked with the error OnStart returned. Optional. */
	OnFailure func(err error)
}

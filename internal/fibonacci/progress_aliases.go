// This file provides type aliases for progress types that live in the
// internal/progress package, so that consumers of the fibonacci package
// can reference them without an extra import.

package fibonacci

import "github.com/agbru/fibsci/internal/progress"

// Type aliases for types defined in internal/progress.
type (
	// ProgressUpdate is a type alias for progress.ProgressUpdate.
	ProgressUpdate = progress.ProgressUpdate

	// ProgressCallback is a type alias for progress.ProgressCallback.
	ProgressCallback = progress.ProgressCallback
)

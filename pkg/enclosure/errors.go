package enclosure

import "fmt"

// ValidationError reports an unusable input parameter. It is produced by
// Validate before any geometry is built; geometry stages never see an
// invalid Spec.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameters: %s: %s", e.Field, e.Message)
	}
	return "invalid parameters: " + e.Message
}

// GeometryError reports a boolean, fillet or placement operation that
// would produce degenerate, self-intersecting or empty geometry. A
// geometry error aborts the whole build; no partial solids are returned.
type GeometryError struct {
	Stage   string
	Message string
}

func (e GeometryError) Error() string {
	return fmt.Sprintf("geometry failure in %s: %s", e.Stage, e.Message)
}

// geoErr is a shorthand constructor used by the pipeline stages.
func geoErr(stage, format string, args ...interface{}) GeometryError {
	return GeometryError{Stage: stage, Message: fmt.Sprintf(format, args...)}
}

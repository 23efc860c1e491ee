package redox

// SearchError indicates the FHIR endpoint could not be reached or answered with an error status.
// Only Error() is meant for callers; Cause carries the transport detail for logging.
type SearchError struct {
	Kind  ResourceKind
	Cause error
}

func (e *SearchError) Error() string {
	return "failed to search " + string(e.Kind)
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}

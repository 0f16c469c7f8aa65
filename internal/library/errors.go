package library

import "fmt"

// ValidationError reports a missing or malformed field on a mutation.
// No state change occurs when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateEntryError reports a second check-in attempt for a student id
// already present in the attendance log.
type DuplicateEntryError struct {
	StudentID string
}

func (e DuplicateEntryError) Error() string {
	return fmt.Sprintf("attendance already marked for %s", e.StudentID)
}

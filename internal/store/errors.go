package store

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailRequired is returned when an operation is missing the candidate
	// email. It is a local precondition failure and never reaches the driver.
	ErrEmailRequired = errors.New("candidate email is required")

	// ErrCandidateNotFound is returned when an answer append targets a missing
	// candidate and auto-create is disabled.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrDuplicateCandidate is returned on a direct insert that violates the
	// unique email index.
	ErrDuplicateCandidate = errors.New("candidate with this email already exists")
)

// ConnectionError reports that the document store was unreachable at the time
// of use. It is fatal to the operation in progress, not to the process.
type ConnectionError struct {
	URI string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to mongodb at %s: %v", e.URI, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

package questions

import "fmt"

// TransportError reports that the upstream question-generation call failed
// entirely, before any response body was obtained.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("question generation transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports that the upstream response could not be
// parsed as JSON. Raw retains the upstream text for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("question generation returned non-JSON output: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// MissingTechnologyError reports a parseable response missing a requested technology.
type MissingTechnologyError struct {
	Tech string
}

func (e *MissingTechnologyError) Error() string {
	return fmt.Sprintf("response is missing questions for technology %q", e.Tech)
}

// InsufficientQuestionsError reports that a technology yielded fewer than the
// required minimum of questions after normalization.
type InsufficientQuestionsError struct {
	Tech string
	Got  int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("got %d questions for technology %q, need at least %d", e.Got, e.Tech, minPerTech)
}

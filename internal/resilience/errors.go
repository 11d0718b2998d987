package resilience

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrNoCandidates is returned when a fallback list is empty.
var ErrNoCandidates = eris.New("resilience: no candidates configured")

// ExhaustedError reports that every candidate in a fallback list failed.
// Last holds the final candidate's error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d candidates failed: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

package books

import (
	"errors"
	"fmt"
)

// ErrFetch is matched by every failure returned from FetchBooks.
var ErrFetch = errors.New("fetch books failed")

// Stage names the step of the fetch chain that failed.
type Stage string

const (
	StageRequest  Stage = "request"
	StageStatus   Stage = "status"
	StageDecode   Stage = "decode"
	StageValidate Stage = "validate"
)

// FetchError is the single failure kind of the data fetcher. Network errors,
// bad statuses, malformed bodies and schema mismatches all collapse into it.
type FetchError struct {
	Stage  Stage
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: %s (status %d): %v", e.Stage, e.URL, ErrFetch, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Stage, e.URL, ErrFetch, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFetch) match any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

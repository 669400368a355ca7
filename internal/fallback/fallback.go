// Package fallback evaluates ordered precedence chains for optional
// configuration fields. A chain tries each candidate source in order and
// returns the first value produced. A candidate the user supplied but that
// fails to resolve stops the chain immediately rather than falling through,
// so a typo in an icon path is reported instead of silently masked by a
// lower-precedence source.
package fallback

import (
	"context"
	"fmt"
)

// Candidate is one source in a precedence chain.
type Candidate struct {
	// Name identifies the candidate in error messages, typically the
	// environment variable or file it reads.
	Name string

	// Specified reports whether the user supplied this source. Unspecified
	// candidates are skipped without being evaluated.
	Specified bool

	// Resolve produces the value. An error from a specified candidate is
	// fatal to the whole chain.
	Resolve func(ctx context.Context) (string, error)
}

// Chain is the ordered candidate list for one configuration field.
type Chain struct {
	// Field names the configuration field in error messages.
	Field string

	// Candidates are evaluated in order.
	Candidates []Candidate

	// ExhaustedHint tells the user how to supply a value when every
	// candidate is unspecified. Chains whose final candidate is always
	// specified never use it.
	ExhaustedHint string
}

// Resolution is a resolved value plus the name of the candidate that
// produced it.
type Resolution struct {
	Value     string
	Candidate string
}

// ResolutionError reports a chain that produced no value: either a
// specified candidate failed, or every candidate was unspecified.
type ResolutionError struct {
	Field     string
	Candidate string // empty when the chain was exhausted
	Hint      string
	Err       error
}

func (e *ResolutionError) Error() string {
	if e.Candidate != "" {
		return fmt.Sprintf("resolving %s from %s: %v", e.Field, e.Candidate, e.Err)
	}

	if e.Hint != "" {
		return fmt.Sprintf("no %s found: %s", e.Field, e.Hint)
	}

	return fmt.Sprintf("no %s found", e.Field)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolve evaluates the chain and returns the first resolution.
func (c Chain) Resolve(ctx context.Context) (*Resolution, error) {
	for _, cand := range c.Candidates {
		if !cand.Specified {
			continue
		}

		value, err := cand.Resolve(ctx)
		if err != nil {
			return nil, &ResolutionError{Field: c.Field, Candidate: cand.Name, Err: err}
		}

		return &Resolution{Value: value, Candidate: cand.Name}, nil
	}

	return nil, &ResolutionError{Field: c.Field, Hint: c.ExhaustedHint}
}

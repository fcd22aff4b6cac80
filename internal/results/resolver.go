package results

import (
	"context"
)

// Lookup is what a Resolver found for a roll number.
type Lookup struct {
	StudentName  string
	SubjectMarks string
	// Found is false when the source has no such student, this is not an error.
	Found bool
}

// Resolver resolves a single, already validated roll number.
//
// Implementations must not keep state between calls that would make one
// roll number's lookup depend on another's, the fetcher calls Resolve
// concurrently from many goroutines.
type Resolver interface {
	Resolve(ctx context.Context, rollNumber string) (Lookup, error)
}

// ResolverFunc adapts a plain function into a Resolver.
type ResolverFunc func(ctx context.Context, rollNumber string) (Lookup, error)

func (f ResolverFunc) Resolve(ctx context.Context, rollNumber string) (Lookup, error) {
	return f(ctx, rollNumber)
}

package results

import (
	"context"
	"resultfetcher/internal/scrapers/bise"
)

// PortalResolver resolves roll numbers against the live results portal.
type PortalResolver struct {
	client *bise.Client
}

func NewPortalResolver(client *bise.Client) PortalResolver {
	return PortalResolver{client: client}
}

func (r PortalResolver) Resolve(ctx context.Context, rollNumber string) (Lookup, error) {
	result, err := r.client.Lookup(ctx, rollNumber)
	if err != nil {
		return Lookup{}, err
	}
	return Lookup{
		StudentName:  result.StudentName,
		SubjectMarks: result.SubjectMarks,
		Found:        result.Found,
	}, nil
}

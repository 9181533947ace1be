package secrets

import "context"

// Resolver fetches short-lived credential strings by logical name. Resolved
// values are memoized for the process lifetime, so a run never re-reads a
// rotated secret mid-flight; long-lived deployments would need a TTL here.
type Resolver interface {
	Get(ctx context.Context, name string) (string, error)
}

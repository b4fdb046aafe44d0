package ports

import (
	"bumpdeps/internal/types"
	"context"
)

// Ledger keeps an audit trail of bump outcomes, one record per (key, version, repo).
// Recording the same triple again MUST overwrite the previous record.
type Ledger interface {
	Record(ctx context.Context, key, version string, result types.RepoResult) error

	// Results returns the recorded outcomes for a key/version, in no particular order.
	Results(ctx context.Context, key, version string) ([]types.RepoResult, error)
}

package redis

import (
	"context"
	"fmt"

	"bumpdeps/internal/types"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	ledgerKeyNameTemplate = "_bumpdeps_ledger_%s_%s"
)

// Ledger implements ports.Ledger with one hash per (key, version), one field per repository.
type Ledger struct {
	cli *redis.Client
}

func NewLedger(cli *redis.Client) *Ledger {
	return &Ledger{cli: cli}
}

func (l *Ledger) Record(ctx context.Context, key, version string, result types.RepoResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err := l.cli.HSet(ctx, getLedgerKey(key, version), result.Repo, string(b)).Err(); err != nil {
		return types.Err(types.ErrDataStoreAccess, err, "record %s", result.Repo)
	}
	return nil
}

func (l *Ledger) Results(ctx context.Context, key, version string) ([]types.RepoResult, error) {
	out := l.cli.HGetAll(ctx, getLedgerKey(key, version))
	if out.Err() != nil {
		return nil, types.Err(types.ErrDataStoreAccess, out.Err(), "")
	}
	m := out.Val()
	results := make([]types.RepoResult, 0, len(m))
	for repo, raw := range m {
		var r types.RepoResult
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode ledger entry %s: %w", repo, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func getLedgerKey(key, version string) string {
	return fmt.Sprintf(ledgerKeyNameTemplate, key, version)
}

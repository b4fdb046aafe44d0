package cmds

import (
	"cmp"
	"context"
	"slices"

	"bumpdeps/internal/backends"
	"bumpdeps/internal/ports"
	"bumpdeps/internal/types"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var ledgerFromEnv = func(ctx context.Context) (ports.Ledger, error) {
	return backends.LedgerFromEnv(ctx)
}

// newHistoryCmd prints the ledger entries of a previous bump.
func newHistoryCmd() *cobra.Command {
	var key, ref string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the recorded outcome of a bump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := types.ParseRef(ref)
			if err != nil {
				return err
			}
			ledger, err := ledgerFromEnv(cmd.Context())
			if err != nil {
				return err
			}
			if ledger == nil {
				return types.Err(types.ErrConfig, nil, "%s must be set to read the ledger", backends.LedgerBackendEnvKey)
			}
			results, err := ledger.Results(cmd.Context(), key, version)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return types.Err(types.ErrNotFound, nil, "no results recorded for %s %s", key, version)
			}
			slices.SortFunc(results, func(a, b types.RepoResult) int { return cmp.Compare(a.Repo, b.Repo) })

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "gradle.properties key of the bump")
	cmd.Flags().StringVar(&ref, "ref", "", "release ref of the bump, e.g. refs/tags/v1.2.3")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("ref")
	return cmd
}

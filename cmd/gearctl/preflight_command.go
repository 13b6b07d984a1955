package main

import (
	"fmt"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/infra/readstore"
	"gear-ledger/internal/usecase/queries"

	"github.com/spf13/cobra"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	var actionFlag string

	cmd := &cobra.Command{
		Use:   "preflight <asset-id>...",
		Short: "Dry-run a checkout or check-in cart without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			action, err := asset.NewAction(actionFlag)
			if err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			pool, err := ctx.ensurePool()
			if err != nil {
				return err
			}
			uow, err := ctx.unitOfWork()
			if err != nil {
				return err
			}

			q := queries.NewTransactionQueries(readstore.NewTransactionReadStore(pool), uow, asset.NewStateMachine(), cfg.Engine.BatchMaxItems)
			results, err := q.Preflight(cmd.Context(), action, ids)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				verdict := "ok"
				if !r.Allowed {
					verdict = "blocked"
				}
				rows = append(rows, []string{r.AssetID.String(), r.CurrentStatus, verdict, r.Reason})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Asset", "Status", "Verdict", "Reason"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&actionFlag, "action", "a", string(asset.ActionCheckOut), "CHECK_OUT or CHECK_IN")
	return cmd
}

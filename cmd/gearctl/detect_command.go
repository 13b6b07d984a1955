package main

import (
	"fmt"
	"strconv"

	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/usecase/queries"

	"github.com/spf13/cobra"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <asset-id>...",
		Short: "Show which presets a set of scanned assets matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			uow, err := ctx.unitOfWork()
			if err != nil {
				return err
			}

			matcher := preset.NewMatcher(preset.Policy{
				OverallThreshold:  cfg.Engine.MatchOverallThreshold,
				RequiredThreshold: cfg.Engine.MatchRequiredThreshold,
			})
			matches, err := queries.NewPresetQueries(uow, matcher).Detect(cmd.Context(), ids)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No preset reaches the match thresholds")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{
					m.Preset.Name(),
					strconv.Itoa(m.Preset.Priority()),
					fmt.Sprintf("%d/%d", m.MatchedItems, m.TotalItems),
					strconv.Itoa(m.MatchPercentage) + "%",
					fmt.Sprintf("%d/%d", m.RequiredMatched, m.RequiredItems),
					strconv.Itoa(len(m.MissingItems)),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Preset", "Priority", "Matched", "Match", "Required", "Missing"},
				rows, 1, 3, 5,
			))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"gear-ledger/internal/infra/outbox"
	"gear-ledger/internal/infra/readstore"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/usecase/shared"

	"github.com/spf13/cobra"
)

func newOutboxCommand(ctx *commandContext) *cobra.Command {
	outboxCmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect and drain queued notifications",
	}

	outboxCmd.AddCommand(&cobra.Command{
		Use:   "drain",
		Short: "Deliver every due notification job once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			uow, err := ctx.unitOfWork()
			if err != nil {
				return err
			}

			relay := outbox.NewRelay(uow, outbox.NewLogSender(slog.Default()), clock.NewRealClock(), cfg.Outbox)
			total := 0
			for {
				n, err := relay.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				total += n
				if n == 0 {
					break
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Handled %d notification job(s)\n", total)
			return nil
		},
	})

	var (
		status string
		limit  uint
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notification jobs, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch status {
			case "", shared.JobStatusQueued, shared.JobStatusSent, shared.JobStatusFailed:
			default:
				return fmt.Errorf("unknown status %q", status)
			}
			pool, err := ctx.ensurePool()
			if err != nil {
				return err
			}

			jobs, err := readstore.NewNotificationReadStore(pool).ListJobs(cmd.Context(), status, limit)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(jobs))
			for _, j := range jobs {
				lastError := ""
				if j.LastError != nil {
					lastError = *j.LastError
				}
				rows = append(rows, []string{j.ID.String(), j.Kind, j.Status, strconv.Itoa(j.Attempts), j.RunAt.Format("2006-01-02 15:04:05"), lastError})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Kind", "Status", "Attempts", "Run At", "Last Error"}, rows, 3))
			return nil
		},
	}
	listCmd.Flags().StringVar(&status, "status", shared.JobStatusQueued, "queued, sent, failed, or empty for all")
	listCmd.Flags().UintVar(&limit, "limit", 50, "maximum number of jobs to show")
	outboxCmd.AddCommand(listCmd)

	return outboxCmd
}

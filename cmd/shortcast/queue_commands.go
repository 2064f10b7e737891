package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shortcast/internal/api"
	"shortcast/internal/ipc"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the processing queue",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueResetCommand(ctx))
	queueCmd.AddCommand(newQueueRetryCommand(ctx))
	queueCmd.AddCommand(newQueueHealthCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statuses []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.QueueList(statuses)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Items) == 0 {
					fmt.Fprintln(stdout, "Queue is empty")
					return nil
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"ID", "Job", "Title", "Status", "Progress", "Updated"},
					queueItemRows(resp.Items),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (repeatable)")
	return cmd
}

func queueItemRows(items []api.QueueItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		progress := ""
		if item.Progress.Percent > 0 {
			progress = fmt.Sprintf("%.0f%%", item.Progress.Percent)
		}
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			shortJobID(item.JobID),
			item.Title,
			item.Status,
			progress,
			item.UpdatedAt,
		})
	}
	return rows
}

// shortJobID trims a uuid to its first block for table display.
func shortJobID(jobID string) string {
	if idx := strings.IndexByte(jobID, '-'); idx > 0 {
		return jobID[:idx]
	}
	return jobID
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var failedOnly bool
	var completedOnly bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if failedOnly && completedOnly {
				return fmt.Errorf("--failed and --completed are mutually exclusive")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				var removed int64
				var err error
				switch {
				case failedOnly:
					var resp *ipc.QueueClearFailedResponse
					resp, err = client.QueueClearFailed()
					if resp != nil {
						removed = resp.Removed
					}
				case completedOnly:
					var resp *ipc.QueueClearCompletedResponse
					resp, err = client.QueueClearCompleted()
					if resp != nil {
						removed = resp.Removed
					}
				default:
					var resp *ipc.QueueClearResponse
					resp, err = client.QueueClear()
					if resp != nil {
						removed = resp.Removed
					}
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d item(s)\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only remove failed items")
	cmd.Flags().BoolVar(&completedOnly, "completed", false, "Only remove completed items")
	return cmd
}

func newQueueResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset items stuck in a processing state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.QueueReset()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d item(s)\n", resp.Updated)
				return nil
			})
		},
	}
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [item-id...]",
		Short: "Requeue failed items (all failed items when no ids given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q", arg)
				}
				ids = append(ids, id)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.QueueRetry(ids)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Retried %d item(s)\n", resp.Updated)
				return nil
			})
		},
	}
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show queue and database diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				stdout := cmd.OutOrStdout()

				health, err := client.QueueHealth()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"Total", "Pending", "Processing", "Failed", "Completed"},
					[][]string{{
						strconv.Itoa(health.Total),
						strconv.Itoa(health.Pending),
						strconv.Itoa(health.Processing),
						strconv.Itoa(health.Failed),
						strconv.Itoa(health.Completed),
					}},
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
				))

				db, err := client.DatabaseHealth()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout)
				fmt.Fprintf(stdout, "Database:  %s\n", db.DBPath)
				fmt.Fprintf(stdout, "Readable:  %s\n", yesNo(db.DatabaseReadable))
				fmt.Fprintf(stdout, "Integrity: %s\n", yesNo(db.IntegrityCheck))
				if strings.TrimSpace(db.Error) != "" {
					fmt.Fprintf(stdout, "Error:     %s\n", db.Error)
				}
				return nil
			})
		},
	}
}

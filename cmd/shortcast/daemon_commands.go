package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shortcast/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the shortcast daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			if client, err := ctx.dialClient(); err == nil {
				defer client.Close()
				resp, err := client.Start()
				if err != nil {
					return err
				}
				if resp.Started {
					fmt.Fprintln(stdout, "Daemon started")
				} else {
					fmt.Fprintln(stdout, resp.Message)
				}
				return nil
			}

			exe, err := daemonExecutable()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Daemon not running, launching...")
			var configPath string
			if ctx.configFlag != nil {
				configPath = strings.TrimSpace(*ctx.configFlag)
			}
			if err := launchDaemon(exe, configPath); err != nil {
				return err
			}
			client, err := waitForSocket(ctx.socketPath(), 10*time.Second)
			if err != nil {
				return err
			}
			defer client.Close()
			fmt.Fprintln(stdout, "Daemon started")
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the shortcast daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			err := ctx.withClient(func(client *ipc.Client) error {
				_, err := client.Stop()
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status [job-id]",
		Short: "Show daemon status, or pipeline status for a job",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runJobStatus(ctx, cmd, args[0])
			}
			return runDaemonStatus(ctx, cmd)
		},
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}

func runDaemonStatus(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(client *ipc.Client) error {
		resp, err := client.Status()
		if err != nil {
			return err
		}
		stdout := cmd.OutOrStdout()

		fmt.Fprintf(stdout, "Daemon running: %s (pid %d)\n", yesNo(resp.Running), resp.PID)
		fmt.Fprintf(stdout, "Queue database: %s\n", resp.QueueDBPath)
		fmt.Fprintf(stdout, "Lock file:      %s\n", resp.LockPath)
		if strings.TrimSpace(resp.LastError) != "" {
			fmt.Fprintf(stdout, "Last error:     %s\n", resp.LastError)
		}

		if len(resp.Dependencies) > 0 {
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Dependencies:")
			for _, dep := range resp.Dependencies {
				state := "ready"
				if !dep.Available {
					state = "missing"
					if strings.TrimSpace(dep.Detail) != "" {
						state = dep.Detail
					}
				}
				optional := ""
				if dep.Optional {
					optional = " (optional)"
				}
				fmt.Fprintf(stdout, "  %-12s %s%s\n", dep.Name, state, optional)
			}
		}

		if len(resp.StageHealth) > 0 {
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Stages:")
			for _, health := range resp.StageHealth {
				state := "ready"
				if !health.Ready {
					state = health.Detail
					if strings.TrimSpace(state) == "" {
						state = "not ready"
					}
				}
				fmt.Fprintf(stdout, "  %-12s %s\n", health.Name, state)
			}
		}

		fmt.Fprintln(stdout)
		rows := queueStatsRows(resp.QueueStats)
		if len(rows) == 0 {
			fmt.Fprintln(stdout, "Queue is empty")
			return nil
		}
		fmt.Fprintln(stdout, renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
		return nil
	})
}

func queueStatsRows(stats map[string]int) [][]string {
	keys := make([]string, 0, len(stats))
	for key, count := range stats {
		if count == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, strconv.Itoa(stats[key])})
	}
	return rows
}

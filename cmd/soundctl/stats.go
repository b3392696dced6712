package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cesargomez89/soundboard/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Exchange share statistics with the content server",
}

var statsSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send share logs not yet delivered",
	RunE:  runStatsSend,
}

var statsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Replace local audience statistics with the server's",
	RunE:  runStatsRefresh,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsSendCmd, statsRefreshCmd)
}

func openShares() (*env, *app.ShareService, error) {
	e, err := openEnv()
	if err != nil {
		return nil, nil, err
	}
	return e, app.NewShareService(e.db, e.server(), e.cfg.InstallID, e.log), nil
}

func runStatsSend(cmd *cobra.Command, args []string) error {
	e, shares, err := openShares()
	if err != nil {
		return err
	}
	defer e.Close()

	pending, err := shares.PendingCount()
	if err != nil {
		return err
	}
	sent, err := shares.SendPending(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %d of %d pending share logs\n", sent, pending)
	return err
}

func runStatsRefresh(cmd *cobra.Command, args []string) error {
	e, shares, err := openShares()
	if err != nil {
		return err
	}
	defer e.Close()

	n, err := shares.RefreshAudience(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d audience statistics\n", n)
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/storage"
	"github.com/cesargomez89/soundboard/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull update events from the content server and apply them",
	Long: `Run one sync pass: check the server status, fetch every update event
newer than the last one applied, apply them in order and retry events that
failed in earlier passes.`,
	RunE: runSync,
}

var syncLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the most recent sync log entries",
	RunE:  runSyncLogs,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncLogsCmd)

	syncCmd.Flags().Bool("no-progress", false, "Don't draw a progress bar")
	syncCmd.Flags().Bool("retry-only", false, "Only retry previously failed events")
}

func runSync(cmd *cobra.Command, args []string) error {
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	retryOnly, _ := cmd.Flags().GetBool("retry-only")

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	layout := storage.NewLayout(e.cfg.DataDir)
	if err := layout.Prepare(); err != nil {
		return err
	}

	rec := syncer.NewReconciler(e.db, e.server(), layout, e.log)

	var bar *progressbar.ProgressBar
	if !noProgress {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Applying"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("events"),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		rec.OnProgress = func(done, total int) {
			bar.ChangeMax(total)
			bar.Set(done)
		}
	}

	var res *syncer.Result
	if retryOnly {
		res, err = rec.Retry(cmd.Context())
	} else {
		res, err = rec.Sync(cmd.Context())
	}
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Received %d, applied %d, skipped %d, failed %d, retried %d\n",
		res.Received, res.Applied, res.Skipped, res.Failed, res.Retried)
	return nil
}

func runSyncLogs(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	logs, err := e.db.RecentSyncLogs()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(logs) == 0 {
		fmt.Fprintln(out, "No sync activity yet.")
		return nil
	}
	for _, l := range logs {
		mark := "ok "
		if l.LogType == domain.SyncLogError {
			mark = "ERR"
		}
		fmt.Fprintf(out, "%s  %-14s  %-6s  %s\n", mark, humanize.Time(l.DateTime.Time), l.MediaType, l.Description)
	}

	overflow, err := e.db.SyncLogOverflowCount()
	if err != nil {
		return err
	}
	if overflow > 0 {
		fmt.Fprintf(out, "... and %s older entries\n", humanize.Comma(int64(overflow)))
	}
	return nil
}

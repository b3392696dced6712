package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cesargomez89/soundboard/internal/app"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Print the most shared content",
	Long: `Print the top chart for a window. The window is "all" or a calendar year.
Use --audience to rank by the server's audience statistics instead of this
install's own shares.`,
	RunE: runCharts,
}

var retrospectiveCmd = &cobra.Command{
	Use:   "retrospective YEAR",
	Short: "Print the yearly retrospective",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetrospective,
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.AddCommand(retrospectiveCmd)

	chartsCmd.Flags().String("window", "all", "all or a year")
	chartsCmd.Flags().IntP("limit", "n", 10, "number of entries")
	chartsCmd.Flags().Bool("audience", false, "Rank by audience statistics")
}

func runCharts(cmd *cobra.Command, args []string) error {
	windowArg, _ := cmd.Flags().GetString("window")
	limit, _ := cmd.Flags().GetInt("limit")
	audience, _ := cmd.Flags().GetBool("audience")

	window, err := app.ParseWindow(windowArg)
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	charts := app.NewChartService(e.db, app.NewContentService(e.db, e.log))
	var ranked []app.RankedContent
	if audience {
		ranked, err = charts.TopAudienceContent(window, limit)
	} else {
		ranked, err = charts.TopContent(window, limit)
	}
	if err != nil {
		return err
	}

	printRanked(cmd, ranked)
	return nil
}

func printRanked(cmd *cobra.Command, ranked []app.RankedContent) {
	out := cmd.OutOrStdout()
	if len(ranked) == 0 {
		fmt.Fprintln(out, "Nothing shared yet.")
		return
	}
	for _, r := range ranked {
		title := r.ContentID
		if r.Content != nil {
			title = r.Content.Title()
		}
		fmt.Fprintf(out, "%3s  %-40s  %s\n", humanize.Ordinal(r.Rank), title, humanize.Comma(int64(r.Total)))
	}
}

func runRetrospective(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	charts := app.NewChartService(e.db, app.NewContentService(e.db, e.log))
	retro, err := charts.Retrospective(year)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== %d ===\n", retro.Year)
	printRanked(cmd, retro.TopContent)
	if top := retro.TopAuthor; top != nil {
		name := top.ID
		if top.Author != nil {
			name = top.Author.Name
		}
		fmt.Fprintf(out, "Top author: %s (%s shares)\n", name, humanize.Comma(int64(top.Total)))
	}
	return nil
}

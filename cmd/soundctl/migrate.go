package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Open the database, which applies every pending migration, and report
the resulting schema version.`,
	RunE: runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied schema migrations and check database integrity",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	version, err := e.db.SchemaVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %d (%s)\n", version, e.cfg.DBPath)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	applied, err := e.db.AppliedMigrations()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, m := range applied {
		fmt.Fprintf(out, "%3d  %-45s  %s\n", m.Version, m.Description, humanize.Time(m.AppliedAt.Time))
	}

	pending, err := e.db.PendingMigrations()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		fmt.Fprintf(out, "%d migration(s) pending\n", len(pending))
	}

	if err := e.db.CheckIntegrity(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Integrity check: ok")
	return nil
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crm/internal/config"
	"crm/internal/storage/sqlite"
)

func slotsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List persisted collection slots in the SQLite store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != config.DriverSQLite {
				return fmt.Errorf("slots requires the %s driver, got %q", config.DriverSQLite, cfg.Storage.Driver)
			}

			store, err := sqlite.Open(cfg.Storage.SQLitePath, newLogger(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer store.Close()

			slots, err := store.ListSlots(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLOT\tBYTES\tUPDATED")
			for _, s := range slots {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Slot, s.Size, s.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
}

package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/placefilter/internal/config"
	"github.com/jask/placefilter/internal/database"
	"github.com/jask/placefilter/internal/database/repository"
)

func prefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefs",
		Short: "List the rows in the sqlite preference store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.EqualFold(strings.TrimSpace(cfg.Store.Backend), config.BackendSQLite) {
				return fmt.Errorf("prefs: store backend is %q, listing needs %q", cfg.Store.Backend, config.BackendSQLite)
			}
			db, err := database.OpenMigrated(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer db.Close()

			rows, err := repository.NewPreferenceRepo(db, "").List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list preferences: %w", err)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no stored preferences")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("KEY", "SESSION", "UPDATED", "VALUE")
			for _, p := range rows {
				t.Row(p.Key, p.SessionID, p.UpdatedAt.UTC().Format(time.RFC3339), string(p.Value))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// the file may not exist yet, so the root's config loading is skipped
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.FilePath(cfgPath)
			exists := true
			if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
				exists = false
			} else if err != nil {
				return fmt.Errorf("stat %s: %w", target, err)
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}

			var (
				c   config.Config
				err error
			)
			if exists {
				c, err = config.Load(target)
			} else {
				c, err = config.Defaults()
			}
			if err != nil {
				return err
			}
			if catalogPath != "" {
				c.Catalog.Path = catalogPath
			}
			if backend != "" {
				c.Store.Backend = backend
			}
			if err := c.Validate(); err != nil {
				return err
			}
			if err := config.Save(target, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

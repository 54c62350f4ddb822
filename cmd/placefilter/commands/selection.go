package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/placefilter/internal/picker"
	"github.com/jask/placefilter/internal/prefs"
	"github.com/jask/placefilter/internal/selection"
	"github.com/jask/placefilter/internal/session"
	"github.com/jask/placefilter/internal/view"
)

func run(cmd *cobra.Command, fn func(rt *session.Runtime) error) error {
	return withRuntime(cmd.Context(), stderrLogger(cfg.Log, cmd.ErrOrStderr()), fn)
}

func printSelection(w io.Writer, rt *session.Runtime) {
	cur := rt.Current()
	c := rt.View().Counts
	fmt.Fprintf(w, "country: %s\nstate:   %s\ncity:    %s\n", cur.Country(), cur.State(), cur.City())
	fmt.Fprintf(w, "countries: %d  states: %d  cities: %d\n", c.Countries, c.States, c.Cities)
}

func showCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved selection and its counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(rt *session.Runtime) error {
				if !asJSON {
					printSelection(cmd.OutOrStdout(), rt)
					return nil
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Selection prefs.Record `json:"selection"`
					Counts    view.Counts  `json:"counts"`
				}{prefs.RecordOf(rt.Current()), rt.View().Counts})
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <country|state|city> <name>",
		Short: "Toggle a value at one level; selecting the current value clears it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := selection.ParseLevel(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(rt *session.Runtime) error {
				if err := rt.Select(level, args[1]); err != nil {
					return err
				}
				printSelection(cmd.OutOrStdout(), rt)
				return nil
			})
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <country|state|city>",
		Short: "Clear a level and everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := selection.ParseLevel(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(rt *session.Runtime) error {
				rt.Clear(level)
				printSelection(cmd.OutOrStdout(), rt)
				return nil
			})
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the whole selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(rt *session.Runtime) error {
				rt.Reset()
				printSelection(cmd.OutOrStdout(), rt)
				return nil
			})
		},
	}
}

func optionsCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "options <country|state|city>",
		Short: "List the choices for a level under the saved selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := selection.ParseLevel(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(rt *session.Runtime) error {
				cur := rt.Current()
				for opt := range picker.Filter(rt.Options(level), query) {
					mark := " "
					if cur.Get(level) == opt {
						mark = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, opt)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive substring filter")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog restricted to the saved selection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(rt *session.Runtime) error {
				if out == "" || out == "-" {
					return rt.View().WriteJSON(cmd.OutOrStdout())
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				if err := rt.View().WriteJSON(f); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

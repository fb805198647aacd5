package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/termio/pkg/keymap"
)

// NewBindingsCommand creates the bindings command
func NewBindingsCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "bindings [profile]",
		Short: "Print the binding cheat sheet for a profile",
		Long: `Print a profile's key bindings grouped by category, in priority
order. Without an argument the configured default profile is shown
(~/.termio/profile.yaml, or the built-in bindings if it is missing).

Examples:
  termio bindings
  termio bindings my-profile
  termio bindings --category Navigation`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadBindingsProfile(cmd, args)
			if err != nil {
				return err
			}

			reg := keymap.NewRegistry()
			if err := prof.Apply(reg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header := prof.Name
			if prof.Version != "" {
				header += " (v" + prof.Version + ")"
			}
			_, _ = fmt.Fprintf(out, "Profile: %s\n", header)
			if prof.Description != "" {
				_, _ = fmt.Fprintf(out, "%s\n", prof.Description)
			}
			_, _ = fmt.Fprintln(out)

			if category != "" {
				bs := reg.ByCategory(category)
				if len(bs) == 0 {
					return fmt.Errorf("no bindings in category %q (have: %s)",
						category, strings.Join(reg.Categories(), ", "))
				}
				_, _ = fmt.Fprintln(out, category)
				for _, b := range bs {
					desc := b.Description
					if desc == "" {
						desc = b.Action
					}
					_, _ = fmt.Fprintf(out, "  %-18s %s\n", b.Label(), desc)
				}
				return nil
			}

			_, _ = fmt.Fprint(out, reg.HelpText())
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Show only bindings in this category")

	return cmd
}

// loadBindingsProfile picks the profile the bindings command shows: the
// named argument, the materialized default file, or the built-in set.
func loadBindingsProfile(cmd *cobra.Command, args []string) (*keymap.Profile, error) {
	var path string
	if len(args) == 1 {
		resolved, err := resolveProfileArg(args[0])
		if err != nil {
			return nil, err
		}
		path = resolved
	} else {
		path = GetDefaultProfilePath()
		if _, err := os.Stat(path); err != nil {
			return keymap.DefaultProfile(), nil
		}
	}

	prof, err := keymap.ImportProfile(path)
	if err != nil {
		var warn *keymap.ShadowedBindingWarning
		if prof == nil || !errors.As(err, &warn) {
			return nil, err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "⚠ %v\n", warn)
	}
	return prof, nil
}

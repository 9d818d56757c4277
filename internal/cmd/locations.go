package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	indexStyle   = lipgloss.NewStyle().Faint(true)
	defaultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)

func newLocationsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List settings files in load order (last wins)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := e.openStore(cmd.Context())
			if err != nil {
				return err
			}

			def, hasDefault := store.DefaultLocation()
			for i, loc := range store.Locations() {
				line := fmt.Sprintf("%s %s", indexStyle.Render(fmt.Sprintf("%d.", i+1)), loc)
				if hasDefault && loc == def {
					line += " " + defaultStyle.Render("(default)")
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

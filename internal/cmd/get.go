package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGetCommand(e *env) *cobra.Command {
	var origin bool

	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print a merged value, or all settings when no key is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore(cmd.Context())
			if err != nil {
				return err
			}

			var value any
			if len(args) == 0 {
				value = store.All()
			} else {
				rv := store.Resolve(args[0])
				if !rv.Exists {
					return fmt.Errorf("key %q is not set", args[0])
				}
				if origin {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), rv.Location)
					return err
				}
				value = rv.Value
			}

			out, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&origin, "origin", false, "print the file the value comes from instead of the value")
	return cmd
}

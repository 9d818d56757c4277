package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yacchi/kasane"
	"gopkg.in/yaml.v3"
)

func newSetCommand(e *env) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a single key to the default (or --target) file",
		Long: `Write a single key to the default file, or to --target.

The value is read as YAML, so "9" is stored as a number, "true" as a
boolean and "[a, b]" as a list. Anything that does not parse is stored as
a string. The target file must already exist.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore(cmd.Context())
			if err != nil {
				return err
			}

			var opts []kasane.WriteOption
			if target != "" {
				opts = append(opts, kasane.WithTarget(kasane.Location(target)))
			}
			return store.Write(cmd.Context(), args[0], parseValue(args[1]), opts...)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "file to write instead of the default file")
	return cmd
}

// parseValue reads s as a YAML value, falling back to the raw string.
func parseValue(s string) any {
	if s == "" {
		return ""
	}
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return s
	}
	return v
}

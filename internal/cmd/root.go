// Package cmd implements the kasane command line interface.
package cmd

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yacchi/kasane"
)

// envPrefix is the prefix of environment variables overriding flags,
// e.g. KASANE_DEFAULT for --default.
const envPrefix = "KASANE"

// env carries state shared by all subcommands of one root command.
type env struct {
	v   *viper.Viper
	log *logrus.Logger
}

// NewRootCommand builds the kasane command tree.
func NewRootCommand(version string) *cobra.Command {
	e := &env{
		v:   viper.New(),
		log: logrus.New(),
	}
	e.v.SetEnvPrefix(envPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "kasane",
		Short: "Read and write layered settings files",
		Long: `kasane merges several YAML settings files into one view.

Files are loaded in file-name order, so "b.yml" overrides "a.yml" whatever
their directories. The --default file is always loaded last and is where
"set" writes unless --target is given.

Every flag can also be set from the environment: KASANE_FILE (space
separated), KASANE_DEFAULT and KASANE_VERBOSE.`,
		Version:      version,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			e.log.SetOutput(cmd.ErrOrStderr())
			e.log.SetLevel(logrus.WarnLevel)
			if e.v.GetBool("verbose") {
				e.log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceP("file", "f", nil, "settings file to load (repeatable)")
	flags.StringP("default", "d", "", "settings file loaded last and written by default")
	flags.Bool("verbose", false, "log debug output to stderr")
	if err := e.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		newGetCommand(e),
		newSetCommand(e),
		newLocationsCommand(e),
	)
	return root
}

// openStore loads the store described by the flags and environment.
func (e *env) openStore(ctx context.Context) (*kasane.Store, error) {
	files := e.v.GetStringSlice("file")
	locs := make([]kasane.Location, len(files))
	for i, f := range files {
		locs[i] = kasane.Location(f)
	}

	return kasane.New(ctx,
		kasane.WithLocations(locs...),
		kasane.WithDefaultLocation(kasane.Location(e.v.GetString("default"))),
		kasane.WithLogger(e.log),
	)
}

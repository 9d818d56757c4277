// Command kasane reads and writes layered settings files.
//
// Usage:
//
//	kasane -f base.yml -f team.yml -d user.yml get theme
//	kasane -d user.yml set theme dark
//	kasane -f base.yml -d user.yml locations
package main

import (
	"os"

	"github.com/yacchi/kasane/internal/cmd"
)

var version = "dev"

func main() {
	if err := cmd.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}

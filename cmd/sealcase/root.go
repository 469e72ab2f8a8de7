package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCommand creates the root cobra command. It only provides help
// text and registers subcommands; all functionality lives in them.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sealcase",
		Short: "Parametric water-resistant enclosure generator",
		Long: `sealcase generates the printable solids of a water-resistant enclosure
from a declarative parameter set: a box, a matching lid, and a
compressible sealing gasket, exported as binary STL.

Parameters come from a YAML file or from a small Lisp script.`,

		SilenceUsage:  true,
		SilenceErrors: true,

		Version: version,
	}

	rootCmd.AddCommand(newBuildCommand())
	return rootCmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	lang     string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "typefacet",
	Short: "Validate facets of type library documents",
	Long: `typefacet loads a type library (YAML or JSON) and checks every facet
attached to its types: annotations, defaults, examples, discriminators and
custom facets.

Examples:
  typefacet check api-types.yaml
  typefacet check --format json --lang ja api-types.yaml
  typefacet check --watch api-types.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "message language (en, ja)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

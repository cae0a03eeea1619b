// Package cmd implements the minisoft CLI, a Cobra command tree with
// a root command that performs the real work, plus small debugging
// subcommands for each earlier pipeline stage.
package cmd

import "github.com/spf13/cobra"

var (
	verbose    bool
	noColor    bool
	configPath string
	irOut      string
)

var rootCmd = &cobra.Command{
	Use:   "minisoft <source-file>",
	Short: "MiniSoft batch compiler",
	Long: `minisoft compiles a single MiniSoft source file into a quadruple-based
intermediate representation, reporting lexical, syntax, semantic, and
codegen diagnostics with a source-line caret.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable structured logging")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI color in diagnostic output")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a .minisoft.yaml config file")
	rootCmd.Flags().StringVar(&irOut, "ir-out", "", "write the quadruple IR to this path instead of the configured destination")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/minisoft-lang/minisoft/internal/compiler"
	"github.com/minisoft-lang/minisoft/internal/config"
	"github.com/minisoft-lang/minisoft/internal/logging"
	"github.com/minisoft-lang/minisoft/internal/quad"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCompile implements the root command: read the source file, run
// the full pipeline, and either print the IR or exit with the code
// assigned to the failing phase.
func runCompile(_ *cobra.Command, args []string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}

	log := logging.New(verbose)
	defer log.Sync() //nolint:errcheck

	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minisoft: %v\n", err)
		os.Exit(6)
	}
	log.Info("compiling", zap.String("file", filename), zap.Int("bytes", len(source)))

	color := cfg.Diagnostics.Color && !noColor
	sess := compiler.New(string(source), filename, color)
	sess.Trace = verbose
	sess.MaxIdentifierLength = cfg.Diagnostics.MaxIdentifierLength
	stage := sess.Run()

	if len(sess.Reporter.Diagnostics()) > 0 {
		fmt.Fprint(os.Stderr, sess.Reporter.Render(sess.Source))
	}
	if stage != compiler.StageDone {
		log.Info("compilation failed", zap.Int("stage", int(stage)))
		os.Exit(stage.ExitCode())
	}

	rendered := quad.Render(sess.Quads)
	dest := cfg.IR.Destination
	if irOut != "" {
		dest = irOut
	}
	if dest == "" || dest == "stdout" || dest == "-" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(dest, []byte(rendered), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "minisoft: %v\n", err)
		os.Exit(6)
	}
	log.Info("wrote IR", zap.String("destination", dest))
	return nil
}

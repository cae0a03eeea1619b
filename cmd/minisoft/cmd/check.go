package cmd

import (
	"fmt"
	"os"

	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/lexer"
	"github.com/minisoft-lang/minisoft/internal/parser"
	"github.com/minisoft-lang/minisoft/internal/semantic"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run lexing, parsing, and semantic analysis without emitting IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	reporter := diag.NewReporter(true)

	tokens := lexer.New(string(source), reporter).Tokenize()
	if reporter.HasErrors(diag.Lexical) {
		fmt.Fprint(os.Stderr, reporter.Render(string(source)))
		os.Exit(2)
	}

	program, ok := parser.New(tokens, reporter).ParseProgram()
	if !ok {
		fmt.Fprint(os.Stderr, reporter.Render(string(source)))
		os.Exit(3)
	}

	analyzer := semantic.New(reporter)
	analyzed := analyzer.Analyze(program)
	fmt.Fprint(os.Stderr, reporter.Render(string(source)))
	if !analyzed {
		os.Exit(4)
	}
	fmt.Println("ok:", analyzer.Table().Len(), "symbols declared")
	return nil
}

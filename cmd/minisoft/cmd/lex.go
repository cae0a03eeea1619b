package cmd

import (
	"fmt"
	"os"

	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a MiniSoft file and print the resulting tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	reporter := diag.NewReporter(true)
	tokens := lexer.New(string(source), reporter).Tokenize()

	for _, tok := range tokens {
		fmt.Printf("%-14s %-20q @%d:%d\n", tok.Type, tok.Literal, tok.Span.Start.Line, tok.Span.Start.Column)
	}
	if reporter.HasErrors(diag.Lexical) {
		fmt.Fprint(os.Stderr, reporter.Render(string(source)))
		os.Exit(2)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/lexer"
	"github.com/minisoft-lang/minisoft/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a MiniSoft file and dump the resulting AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
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

	fmt.Printf("Program %s (%d declarations, %d statements)\n", program.Name, len(program.Declarations), len(program.Body))
	for _, d := range program.Declarations {
		dumpNode(d, 1)
	}
	for _, s := range program.Body {
		dumpNode(s, 1)
	}
	return nil
}

func dumpNode(node ast.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *ast.VarDecl:
		fmt.Printf("%sVarDecl %v : %s\n", prefix, n.Names, n.Type.Elem)
	case *ast.VarDeclInit:
		fmt.Printf("%sVarDeclInit %s : %s\n", prefix, n.Name, n.Type.Elem)
	case *ast.ArrayDeclInit:
		fmt.Printf("%sArrayDeclInit %s : [%s; %d elements]\n", prefix, n.Name, n.Type.Elem, len(n.Elements))
	case *ast.ConstDecl:
		fmt.Printf("%sConstDecl %s\n", prefix, n.Name)
	case *ast.AssignStmt:
		fmt.Printf("%sAssignStmt\n", prefix)
	case *ast.IfStmt:
		fmt.Printf("%sIfStmt (else=%v)\n", prefix, n.HasElse)
		for _, s := range n.Then {
			dumpNode(s, indent+1)
		}
		for _, s := range n.Else {
			dumpNode(s, indent+1)
		}
	case *ast.DoWhileStmt:
		fmt.Printf("%sDoWhileStmt\n", prefix)
		for _, s := range n.Body {
			dumpNode(s, indent+1)
		}
	case *ast.ForStmt:
		fmt.Printf("%sForStmt %s\n", prefix, n.Var)
		for _, s := range n.Body {
			dumpNode(s, indent+1)
		}
	case *ast.InputStmt:
		fmt.Printf("%sInputStmt\n", prefix)
	case *ast.OutputStmt:
		fmt.Printf("%sOutputStmt (%d args)\n", prefix, len(n.Args))
	default:
		fmt.Printf("%s%T\n", prefix, node)
	}
}
